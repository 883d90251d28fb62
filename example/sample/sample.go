// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The sample command shows a typical optionalist schema: two alone flags,
// a required option, a default, a plain switch and positional scripts.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/yeetrun/optionalist/pkg/cmdline"
	"github.com/yeetrun/optionalist/pkg/optionalist"
	"tailscale.com/util/must"
)

func schema() optionalist.Schema {
	s := optionalist.Schema{
		Describe:         "The description for command.",
		ShowUsageOnError: true,
		Unnamed: &optionalist.Unnamed{
			Example:  "script_filename",
			Describe: "Specify the script filename(s) to execute.",
		},
	}
	s.Add("help", optionalist.Option{
		Type:     optionalist.TypeBoolean,
		Alias:    []string{"?", "h"},
		Alone:    true,
		Describe: "Show this help.",
	}).Add("init", optionalist.Option{
		Type:     optionalist.TypeBoolean,
		Alone:    true,
		Describe: "Initialize your project.",
	}).Add("output", optionalist.Option{
		Required: true,
		Describe: "Specify the filename to output.",
		Example:  "output_filename",
	}).Add("config", optionalist.Option{
		Default:  filepath.Join(must.Get(os.Getwd()), "config.json"),
		Describe: "Specify the configuration file for your project.",
		Example:  "config_filename",
	}).Add("watch", optionalist.Option{
		Type:     optionalist.TypeBoolean,
		Describe: "Specify when you want to set the watch mode.",
	}).Add("timeout", optionalist.Option{
		Type: optionalist.TypeNumber,
	})
	return s
}

// The work this sample stands in for.
var (
	initProject = func() error { return nil }
	loadConfig  = func(path string) error { return nil }
	executeFile = func(file, output string) error { return nil }
	watch       = func(files []string, fn func(file string) error) error { return nil }
)

func main() {
	log.SetFlags(0)
	p := must.Get(cmdline.Compile(schema()))
	os.Exit(run(p, cmdline.Env{}, os.Stdout))
}

func run(p *optionalist.Parser, env cmdline.Env, stdout io.Writer) int {
	res, err := env.Parse(p)
	if errors.Is(err, cmdline.ErrShown) {
		return 1
	}
	if err != nil {
		log.Print(err)
		return 1
	}

	var opts *optionalist.Normal
	switch r := res.(type) {
	case *optionalist.Alone:
		if r.Name() == "help" {
			fmt.Fprintln(stdout, r.Help())
			return 0
		}
		if err := initProject(); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	case *optionalist.Normal:
		opts = r
	}

	if err := start(opts); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

func start(opts *optionalist.Normal) error {
	config, _ := opts.Get("config")
	output, _ := opts.Get("output")
	if err := loadConfig(config.String()); err != nil {
		return err
	}
	exec := func(file string) error {
		return executeFile(file, output.String())
	}
	for _, file := range opts.Unnamed() {
		if err := exec(file); err != nil {
			return err
		}
	}
	if opts.Has("watch") {
		return watch(opts.Unnamed(), exec)
	}
	return nil
}
