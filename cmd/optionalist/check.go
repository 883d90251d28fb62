// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/yeetrun/optionalist/pkg/optionalist"
	"github.com/yeetrun/optionalist/pkg/schemafile"
	"golang.org/x/sync/errgroup"
)

// check loads and compiles every schema in a.checks, at most a.jobs at a
// time. Results are printed in argument order once all files are done.
func (a *app) check() error {
	errs := make([]error, len(a.checks))
	var g errgroup.Group
	g.SetLimit(a.jobs)
	for i, path := range a.checks {
		g.Go(func() error {
			a.vlogf(2, "checking %s", path)
			errs[i] = checkSchema(path)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, path := range a.checks {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(a.stdout, "%s %s: %v\n", color.RedString("FAIL"), path, errs[i])
			continue
		}
		fmt.Fprintf(a.stdout, "%s %s\n", color.GreenString("ok"), path)
	}
	if failed > 0 {
		a.vlogf(1, "%d of %d schemas failed", failed, len(a.checks))
		return errFailed
	}
	return nil
}

func checkSchema(path string) error {
	s, err := schemafile.Load(path)
	if err != nil {
		return err
	}
	_, err = optionalist.Compile(s)
	return err
}
