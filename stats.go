// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cedd

import (
	"fmt"
	"time"
)

// Stats is a snapshot of the resources used by a BDD.
type Stats struct {
	Varnum       int           // Number of declared variables
	Nodes        int           // Number of slots in the node table
	LiveNodes    int           // Number of nodes in use (excluding the terminal)
	FreeNodes    int           // Number of free slots
	Produced     int           // Total number of nodes ever created
	Resizes      int           // Number of times the node table was extended
	Buckets      int           // Number of buckets in the unique table
	UniqueAccess int           // Lookups in the unique table
	UniqueChain  int           // Iterations through the bucket chains
	UniqueHit    int           // Lookups that found an existing node
	UniqueMiss   int           // Lookups that created a new node
	CacheSize    int           // Number of entries in each operation cache
	CacheHits    int           // Results found in the operation caches
	CacheMisses  int           // Results not found in the operation caches
	CachePurged  int           // Entries removed from the caches by the GC
	GCCount      int           // Number of garbage collections
	GCReclaimed  int           // Total number of nodes reclaimed by the GC
	GCTime       time.Duration // Total time spent in garbage collection
}

// Stats returns information about the BDD.
func (b *BDD) Stats() Stats {
	return Stats{
		Varnum:       int(b.varnum),
		Nodes:        b.size,
		LiveNodes:    b.live(),
		FreeNodes:    b.freenum,
		Produced:     b.produced,
		Resizes:      b.resizes,
		Buckets:      len(b.buckets),
		UniqueAccess: b.uniqueAccess,
		UniqueChain:  b.uniqueChain,
		UniqueHit:    b.uniqueHit,
		UniqueMiss:   b.uniqueMiss,
		CacheSize:    len(b.applycache.table),
		CacheHits:    b.opHit,
		CacheMisses:  b.opMiss,
		CachePurged:  b.opPurged,
		GCCount:      len(b.gcstat.history),
		GCReclaimed:  b.reclaimed,
		GCTime:       b.gctime,
	}
}

func (s Stats) String() string {
	res := fmt.Sprintf("Varnum:         %d\n", s.Varnum)
	res += fmt.Sprintf("Allocated:      %d\n", s.Nodes)
	res += fmt.Sprintf("Produced:       %d\n", s.Produced)
	res += fmt.Sprintf("Live:           %d\n", s.LiveNodes)
	res += fmt.Sprintf("Free:           %d\n", s.FreeNodes)
	res += fmt.Sprintf("Resizes:        %d\n", s.Resizes)
	res += fmt.Sprintf("Unique Access:  %d\n", s.UniqueAccess)
	res += fmt.Sprintf("Unique Chain:   %d\n", s.UniqueChain)
	res += fmt.Sprintf("Unique Hit:     %d\n", s.UniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", s.UniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", s.CacheHits)
	res += fmt.Sprintf("Operator Miss:  %d\n", s.CacheMisses)
	res += fmt.Sprintf("Cache Purged:   %d\n", s.CachePurged)
	res += fmt.Sprintf("# of GC:        %d\n", s.GCCount)
	res += fmt.Sprintf("GC Reclaimed:   %d\n", s.GCReclaimed)
	res += fmt.Sprintf("GC Time:        %s", s.GCTime)
	return res
}
