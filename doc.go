// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package cedd defines a concrete type for reduced ordered Binary Decision
Diagrams (BDD) with complement edges, a data structure used to efficiently
represent Boolean functions over a set of variables or, equivalently, sets of
Boolean vectors with a fixed size.

# Basics

A BDD manager is created with the function New, that takes the initial number
of variables, Varnum, and a list of configuration options. Each variable is
represented by an (integer) index in the interval [0..Varnum), called a level.
The order of variables never changes: a node at level i is always above the
nodes with a greater level. New variables can be declared at any time, either
explicitly (with SetVarnum) or implicitly, when calling Ithvar with a level not
yet in use. Our library support the creation of multiple BDD managers, each
with its own nodes and caches.

Most operations return an Edge; that is a reference to a node in the BDD
together with a complement flag. The two constants are given by the same
terminal node, False being the regular edge and True its complement. As a
consequence, negation is computed in constant time. Edges are small comparable
values and, since the representation is canonical, two edges denote the same
function if and only if they are equal.

# Memory management

Nodes are stored in a table made of fixed-size chunks, so that a node never
moves once created. Nodes that are not reachable from an externally referenced
edge are reclaimed by a mark and sweep garbage collector. The GC is triggered
automatically when there is no free node left, or explicitly with the method
GC. A user must declare the edges it wants to keep across operations using
AddRef, and release them with DelRef. Intermediate results built during an
operation are always protected.

An edge pointing to a node that has been reclaimed is detected when used as an
operand, and the operation fails with an error of class InvalidError. The same
is true for edges created by another manager.

# Errors

Operations that return an Edge signal errors using the sentinels Invalid (for a
wrong operand) and Error (when we run out of memory, see the Maxnodesize
option). The cause of the last error can be obtained with the method Err and
tested with the predicates IsErrInvalid, IsErrMemory and IsErrOverflow. The
error status is reset at each operation and the manager stays usable after an
error. There are no panics for conditions that a client can trigger.

For the most part, data structures and algorithms implemented in this library
are an adaptation of those found in the C-library BuDDy, developed by Jorn
Lind-Nielsen, extended with complement edges; we even implemented the same
examples than in the BuDDy distribution for benchmarks and regression testing.
*/
package cedd
