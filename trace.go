// Copyright 2025 The paging Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Source is an address trace source.
type Source interface {
	io.ReaderAt

	// Len returns the size of the address
	// trace in bytes.
	Len() int
}

// ErrBadRecord reports a trace line that does not parse as a
// hexadecimal address.
var ErrBadRecord = errors.New("bad trace record")

// Shards smaller than this are not worth a goroutine.
const minShardBytes = 64 << 10

// A Reader streams the virtual addresses of an address trace: one
// hexadecimal address per line, with blank lines and #-comment lines
// skipped. Addresses are returned in the order the trace records
// them.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	addrs []Address
	pos   int
}

// NewReader creates a Reader from a Source, decoding the whole trace
// up front. Decoding is sharded across CPUs for large traces.
//
// NewReader fails if any record in the trace fails to parse.
func NewReader(src Source) (*Reader, error) {
	size := src.Len()
	buf := make([]byte, size)
	if size > 0 {
		n, err := src.ReadAt(buf, 0)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading trace: %v", err)
		}
		if n != size {
			return nil, fmt.Errorf("reading trace: short read: %d of %d bytes", n, size)
		}
	}

	// Figure out how to break up the decoding phase.
	shards := runtime.GOMAXPROCS(-1)
	if max := size / minShardBytes; shards > max {
		shards = max
	}
	if shards < 1 {
		shards = 1
	}

	// Cut the buffer at line boundaries so each shard decodes whole
	// records.
	cuts := make([]int, shards+1)
	cuts[shards] = size
	for i := 1; i < shards; i++ {
		p := i * size / shards
		if p < cuts[i-1] {
			p = cuts[i-1]
		}
		if j := bytes.IndexByte(buf[p:], '\n'); j >= 0 {
			cuts[i] = p + j + 1
		} else {
			cuts[i] = size
		}
	}

	// Decode each shard, preserving trace order across the results.
	results := make([][]Address, shards)
	var eg errgroup.Group
	for i := 0; i < shards; i++ {
		eg.Go(func() error {
			addrs, err := parseRecords(buf[cuts[i]:cuts[i+1]])
			if err != nil {
				return err
			}
			results[i] = addrs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	addrs := make([]Address, 0, total)
	for _, r := range results {
		addrs = append(addrs, r...)
	}
	return &Reader{addrs: addrs}, nil
}

func parseRecords(data []byte) ([]Address, error) {
	var addrs []Address
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		a, ok, err := parseRecord(line)
		if err != nil {
			return nil, err
		}
		if ok {
			addrs = append(addrs, a)
		}
	}
	return addrs, nil
}

// parseRecord decodes one trace line. ok is false for blank and
// comment lines.
func parseRecord(line []byte) (a Address, ok bool, err error) {
	s := string(bytes.TrimSpace(line))
	if s == "" || s[0] == '#' {
		return 0, false, nil
	}
	a, err = ParseAddress(s)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	return a, true, nil
}

// Progress returns a float64 value between 0 and 1 indicating the
// approximate progress of streaming through the trace.
func (r *Reader) Progress() float64 {
	if len(r.addrs) == 0 {
		return 1
	}
	return float64(r.pos) / float64(len(r.addrs))
}

// Next returns the next address in the trace, or io.EOF once the
// trace is exhausted.
func (r *Reader) Next() (Address, error) {
	if r.pos >= len(r.addrs) {
		return 0, io.EOF
	}
	a := r.addrs[r.pos]
	r.pos++
	return a, nil
}
