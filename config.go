// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"github.com/bitmark-inc/logger"
)

// configs holds the parameters of a BDD, filled by the Option values passed
// to New.
type configs struct {
	varnum          int       // declared variables
	nodesize        int       // initial slots in the node table
	cachesize       int       // initial entries in each operation cache
	cacheratio      int       // cache entries per 100 node slots, 0 for a fixed size
	maxnodesize     int       // hard limit on the node table, 0 if none
	maxnodeincrease int       // limit on the growth at each resize, 0 if none
	minfreenodes    int       // percentage of free slots needed after GC to avoid a resize
	log             *logger.L // nil if we do not log
}

// Option is the type of configuration options accepted by New.
type Option func(*configs)

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.cachesize = _DEFAULTCACHESIZE
	// room for the terminal and a node per literal
	c.nodesize = 2*varnum + 2
	return c
}

// Nodesize sets the initial number of slots in the node table. The table grows
// when needed, so this is only a hint. The default is large enough for the
// literals of all the declared variables.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size > 1 {
			c.nodesize = size
		}
	}
}

// Maxnodesize sets a hard limit on the number of slots in the node table.
// Operations that need more nodes fail with an out-of-memory error and return
// Error. There is no limit by default (value 0).
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease bounds the number of slots added at each resize. Under this
// bound the table doubles in size. The default is 1<<20; zero means no bound.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of the table that must be free after a
// garbage collection. When fewer slots are reclaimed, the table is resized
// (within the limits of Maxnodesize and Maxnodeincrease). The default is 20.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of entries in each operation cache
// (default 10 000).
func Cachesize(size int) Option {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio lets the caches grow with the node table: with a ratio r, a
// resize gives r cache entries for every 100 node slots. Values of 20 or 25
// work well in practice. With the default (0) caches keep their initial size.
func Cacheratio(ratio int) Option {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Logger sets the channel used to report garbage collections, resizes and
// errors. Nothing is logged by default.
func Logger(l *logger.L) Option {
	return func(c *configs) {
		c.log = l
	}
}
