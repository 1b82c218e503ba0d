// Quill is a prototype-based object runtime. This command drives it from a
// script file, a single expression, standard input, or an interactive
// prompt, using a line-oriented attribute-path notation; there is no full
// grammar.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v2"

	"github.com/quillang/quill"

	_ "github.com/tliron/commonlog/simple"
)

const usage = `quill

Usage:
  quill [-v...] [--config=FILE] SCRIPT [ARGUMENTS...]
  quill [-v...] [--config=FILE] -e EXPRESSION [ARGUMENTS...]
  quill [-v...] [--config=FILE] -s [ARGUMENTS...]
  quill [-v...] [--config=FILE]
  quill -h

Arguments:
  SCRIPT     Path to a quill script.
  ARGUMENTS  Positional parameters, exposed on the root stack frame.

Options:
  -e, --expression=EXPRESSION  Evaluate a single expression and print it.
  -s, --stdin                  Read statements from stdin even when it is a TTY.
  -c, --config=FILE            Run-control file (YAML).
  -v, --verbose                Increase log verbosity. May be repeated.
  -h, --help                   Display this help.
`

// config is the optional YAML run-control file.
type config struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

func defaultConfig() config {
	home, _ := os.UserHomeDir()
	return config{
		Prompt:  "quill> ",
		History: filepath.Join(home, ".quill_history"),
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".quillrc")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return cfg, err
		}
		return cfg, nil
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}
	verbosity, _ := opts.Int("--verbose")
	commonlog.Configure(verbosity, nil)
	cfgPath, _ := opts.String("--config")
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "quill:", err)
		os.Exit(1)
	}

	vm := quill.NewVM()
	arguments, _ := opts["ARGUMENTS"].([]string)
	scope, args := mainScope(vm, arguments)

	// Every mode runs inside a root frame owned by the main scope, so this
	// and stack resolve from the very first statement.
	_, err = vm.RunInNewFrame(scope, args, func() (*quill.Object, error) {
		if script, _ := opts.String("SCRIPT"); script != "" {
			return runFile(vm, scope, script)
		}
		if expr, _ := opts.String("--expression"); expr != "" {
			return runExpression(vm, scope, expr)
		}
		useStdin, _ := opts.Bool("--stdin")
		if useStdin || !isTerminal(os.Stdin) {
			return runStdin(vm, scope)
		}
		return runREPL(vm, scope, cfg)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "quill:", err)
		os.Exit(1)
	}
}

// mainScope builds the owner of the root stack frame: a fresh object named
// main whose parent is the root class, plus the positional parameters as
// the frame's arguments.
func mainScope(vm *quill.VM, arguments []string) (*quill.Object, quill.Args) {
	root, err := vm.ClassFor("Pristine")
	if err != nil {
		panic(err)
	}
	scope := quill.NewObject([]*quill.Object{root}, nil)
	scope.SetOwnAttr(quill.Intern("name"), vm.NewText("main"))
	args := make(quill.Args, len(arguments))
	for i, a := range arguments {
		args[i] = vm.NewText(a)
	}
	scope.SetOwnAttr(quill.Intern("args"), vm.NewList(args...))
	return scope, args
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runFile evaluates a script line by line. Blank lines and # comments are
// skipped; the value of the last statement is the script's value.
func runFile(vm *quill.VM, scope *quill.Object, path string) (*quill.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return evalLines(vm, scope, f, path)
}

func runExpression(vm *quill.VM, scope *quill.Object, expr string) (*quill.Object, error) {
	r, err := Eval(vm, scope, expr)
	if err != nil {
		return nil, err
	}
	fmt.Println(vm.Inspect(r))
	return r, nil
}

func runStdin(vm *quill.VM, scope *quill.Object) (*quill.Object, error) {
	return evalLines(vm, scope, os.Stdin, "stdin")
}

func evalLines(vm *quill.VM, scope *quill.Object, r io.Reader, label string) (*quill.Object, error) {
	last := vm.Null
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		src := strings.TrimSpace(scan.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		v, err := Eval(vm, scope, src)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", label, line, err)
		}
		last = v
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return last, nil
}

// runREPL reads statements interactively. Evaluation failures are printed
// and the loop continues; they never abort the process.
func runREPL(vm *quill.VM, scope *quill.Object, cfg config) (*quill.Object, error) {
	l := liner.NewLiner()
	defer l.Close()
	l.SetCtrlCAborts(true)
	if f, err := os.Open(cfg.History); err == nil {
		l.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(cfg.History); err == nil {
			l.WriteHistory(f)
			f.Close()
		}
	}()
	for {
		src, err := l.Prompt(cfg.Prompt)
		switch err {
		case nil:
			// do nothing
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Println()
			return vm.Null, nil
		default:
			return nil, err
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		l.AppendHistory(src)
		r, err := Eval(vm, scope, src)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(vm.Inspect(r))
	}
}
