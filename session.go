// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sus

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/parser"
	"github.com/IBims1NicerTobi/sus-compiler/report"
)

// Result is the outcome of parsing one file: the tree, and the
// diagnostics produced while building it.
type Result struct {
	Tree   *cst.Tree
	Report *report.Report
}

// Session parses batches of files concurrently. Each parse is fully
// independent, so a Session is nothing more than a parallelism limit;
// the zero Session is ready to use.
type Session struct {
	// The maximum number of files parsed at once. If unspecified or
	// non-positive, min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) is
	// used.
	MaxParallelism int

	once sync.Once
	sem  *semaphore.Weighted
}

func (s *Session) init() {
	par := s.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}
	s.sem = semaphore.NewWeighted(int64(par))
}

// ParseAll parses the given files, at most MaxParallelism at a time,
// and returns the results in input order.
//
// Syntax errors do not fail the batch; they are reported in each
// file's [Result]. The only error ParseAll itself returns is the
// context's, if it is cancelled before every parse has been admitted.
func (s *Session) ParseAll(ctx context.Context, files ...*report.File) ([]Result, error) {
	s.once.Do(s.init)

	results := make([]Result, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.sem.Release(1)

			errs := &report.Report{}
			tree := parser.Parse(file, errs)
			errs.Sort()
			results[i] = Result{Tree: tree, Report: errs}
		}()
	}

	wg.Wait()
	return results, nil
}
