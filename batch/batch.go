/*
 * batch.go, part of gostoich.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

/*Package batch evaluates a stream of stoichjson requests, one JSON object per line, and
writes one response per line, in the order the requests were read. Requests are
evaluated concurrently. Either stream can be compressed with z-standard (zstd)
or gzip. Compressed input is detected from its first bytes, so the name
of the input file is not needed.*/
package batch

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rmera/gostoich/stoichjson"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Options for Run. The zero value is usable.
type Options struct {
	Workers   int                   //concurrent evaluations. 0 means runtime.NumCPU()
	Evaluator *stoichjson.Evaluator //nil means the built-in tables
	Logger    *zap.Logger           //nil means no logging
}

// Stats summarizes a run.
type Stats struct {
	Requests int //non-blank lines read, including those that could not be decoded
	Failed   int //responses carrying an error
}

type job struct {
	line int
	req  *stoichjson.Request
	res  chan *stoichjson.Response
}

// nextLine returns the next non-blank line of r, trimmed, and the number of
// lines consumed to reach it, blank ones included.
func nextLine(r *bufio.Reader) ([]byte, int, error) {
	n := 0
	for {
		l, err := r.ReadBytes('\n')
		if len(l) > 0 {
			n++
		}
		l = bytes.TrimSpace(l)
		if len(l) > 0 {
			return l, n, nil
		}
		if err != nil {
			return nil, n, err
		}
	}
}

// Run reads requests from in until EOF, and writes the responses to out.
// A request that can't be decoded or evaluated yields an error response, not
// an error from Run. Run only fails if reading, writing or ctx fails.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) (Stats, error) {
	var stats Stats
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ev := opts.Evaluator
	if ev == nil {
		ev = stoichjson.DefaultEvaluator()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	src, err := NewReader(in)
	if err != nil {
		return stats, Error{"can't open input: " + err.Error(), "", []string{"Run"}}
	}
	defer src.Close()
	reader := bufio.NewReader(src)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, workers)
	order := make(chan job, 2*workers)

	g.Go(func() error {
		defer close(jobs)
		defer close(order)
		line := 0
		for {
			text, n, err := nextLine(reader)
			line += n
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			req, err := stoichjson.ParseRequest(text)
			j := job{line: line, res: make(chan *stoichjson.Response, 1)}
			if jerr, ok := err.(*stoichjson.Error); ok && jerr.InRequest {
				log.Warn("undecodable request", zap.Int("line", line), zap.String("error", jerr.Message))
				j.res <- &stoichjson.Response{ID: fmt.Sprintf("line %d", line), Error: jerr}
			} else if err != nil {
				return err
			} else {
				j.req = req
				select {
				case jobs <- j:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			select {
			case order <- j:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				j.res <- ev.Evaluate(j.req)
			}
			return nil
		})
	}

	g.Go(func() error {
		w := bufio.NewWriter(out)
		for j := range order {
			var r *stoichjson.Response
			select {
			case r = <-j.res:
			case <-gctx.Done():
				return gctx.Err()
			}
			stats.Requests++
			if r.Failed() {
				stats.Failed++
				log.Debug("request failed", zap.Int("line", j.line), zap.String("id", r.ID),
					zap.String("kind", r.Error.Kind), zap.String("error", r.Error.Message))
			}
			if err := r.Send(w); err != nil {
				return err
			}
		}
		return w.Flush()
	})

	if err := g.Wait(); err != nil {
		return stats, Error{err.Error(), "", []string{"Run"}}
	}
	log.Info("batch done", zap.Int("requests", stats.Requests), zap.Int("failed", stats.Failed), zap.Int("workers", workers))
	return stats, nil
}

// RunFiles is Run over files. "-" (or an empty name) means stdin or stdout.
// The output is compressed if outname ends in ".zst" or ".gz".
func RunFiles(ctx context.Context, inname, outname string, opts Options) (Stats, error) {
	var in io.Reader = os.Stdin
	if inname != "" && inname != "-" {
		f, err := os.Open(inname)
		if err != nil {
			return Stats{}, Error{err.Error(), inname, []string{"RunFiles"}}
		}
		defer f.Close()
		in = f
	}
	var out io.Writer = os.Stdout
	var closer io.Closer
	if outname != "" && outname != "-" {
		f, err := os.Create(outname)
		if err != nil {
			return Stats{}, Error{err.Error(), outname, []string{"RunFiles"}}
		}
		defer f.Close()
		w, err := NewWriter(f, outname)
		if err != nil {
			return Stats{}, Error{err.Error(), outname, []string{"RunFiles"}}
		}
		out, closer = w, w
	}
	stats, err := Run(ctx, in, out, opts)
	if e, ok := err.(Error); ok {
		e.filename = inname
		e.Decorate("RunFiles")
		err = e
	}
	if closer != nil {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = Error{cerr.Error(), outname, []string{"RunFiles"}}
		}
	}
	return stats, err
}

// A *zstd.Decoder's Close doesn't return an error.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader returns a reader that decompresses in if it starts with a zstd or gzip
// magic number, and passes it through otherwise.
func NewReader(in io.Reader) (io.ReadCloser, error) {
	b := bufio.NewReader(in)
	head, err := b.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		d, err := zstd.NewReader(b)
		if err != nil {
			return nil, err
		}
		return zstdCloser{d}, nil
	case bytes.HasPrefix(head, gzipMagic):
		return gzip.NewReader(b)
	}
	return io.NopCloser(b), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer that compresses according to the extension of name:
// ".zst" for zstd, ".gz" for gzip, nothing otherwise. It must be closed
// to flush the compressed stream. Closing it doesn't close out.
func NewWriter(out io.Writer, name string) (io.WriteCloser, error) {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".zst"):
		return zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriter(out), nil
	}
	return nopWriteCloser{out}, nil
}
