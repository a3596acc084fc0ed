// zdict is an interactive shell around a single dict.
//
// Usage:
//
//	zdict [opts]
//
// Options:
//
//	-m, --mode       Mode name (mutable, immutable, readonly, insert, arena)
//	-c, --capacity   Pre-size the table for N slots
//	-d, --data       Seed the dict from a JSON/HuJSON object file
//
// Commands (in REPL):
//
//	set <key> <value>   Insert or update an entry
//	get <key>           Look up a key
//	del <key>           Delete a key
//	pop <key>           Remove and return a key
//	len                 Number of entries
//	keys                List keys
//	items               List entries
//	stats               Table occupancy statistics
//	hash                Dict hash (immutable mode only)
//	mode                Current mode
//	modes               List supported modes
//	clear               Remove all entries
//	dump <file>         Write a JSON snapshot atomically
//	help                Show this help
//	exit / quit / q     Exit
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/thehackersplaybook/zdict"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		modeName string
		capacity int
		dataPath string
	)

	flag.StringVarP(&modeName, "mode", "m", "mutable", "dict mode")
	flag.IntVarP(&capacity, "capacity", "c", 0, "pre-sized table capacity")
	flag.StringVarP(&dataPath, "data", "d", "", "seed data file (JSON/HuJSON object)")
	flag.Parse()

	opts := []zdict.Option{zdict.WithModeName(modeName)}

	if capacity > 0 {
		opts = append(opts, zdict.WithCapacity(capacity))
	}

	if dataPath != "" {
		seed, err := loadData(dataPath)
		if err != nil {
			return err
		}

		opts = append(opts, zdict.WithData(seed))
	}

	d, err := zdict.New(opts...)
	if err != nil {
		return err
	}
	defer d.Free()

	return repl(d)
}

// loadData reads a HuJSON object file into a construct source.
func loadData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var out map[string]any
	if err := json.Unmarshal(standardized, &out); err != nil {
		return nil, fmt.Errorf("%s must hold a JSON object: %w", path, err)
	}

	return out, nil
}

var commands = []string{
	"set", "get", "del", "pop", "len", "keys", "items", "stats",
	"hash", "mode", "modes", "clear", "dump", "help", "exit", "quit",
}

func repl(d *zdict.ZDict) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, prefix) {
				out = append(out, c)
			}
		}

		return out
	})

	for {
		input, err := line.Prompt("zdict> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if input == "exit" || input == "quit" || input == "q" {
			return nil
		}

		if err := dispatch(d, input); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func dispatch(d *zdict.ZDict, input string) error {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "set":
		if len(args) < 2 {
			return errors.New("usage: set <key> <value>")
		}

		return d.Set(zdict.Str(args[0]), parseValue(strings.Join(args[1:], " ")))
	case "get":
		if len(args) != 1 {
			return errors.New("usage: get <key>")
		}

		v, err := d.Get(zdict.Str(args[0]))
		if err != nil {
			return err
		}

		fmt.Println(render(v))

		return nil
	case "del":
		if len(args) != 1 {
			return errors.New("usage: del <key>")
		}

		return d.Delete(zdict.Str(args[0]))
	case "pop":
		if len(args) != 1 {
			return errors.New("usage: pop <key>")
		}

		v, err := d.Pop(zdict.Str(args[0]))
		if err != nil {
			return err
		}

		fmt.Println(render(v))

		return nil
	case "len":
		fmt.Println(d.Len())

		return nil
	case "keys":
		for _, k := range d.Keys() {
			fmt.Println(render(k))
		}

		return nil
	case "items":
		for _, p := range d.Items() {
			fmt.Printf("%s: %s\n", render(p.Key), render(p.Value))
		}

		return nil
	case "stats":
		s := d.Stats()
		fmt.Printf("size=%d capacity=%d tombstones=%d load=%.3f\n",
			s.Size, s.Capacity, s.Tombstones, s.LoadRatio)

		return nil
	case "hash":
		h, err := d.HashValue()
		if err != nil {
			return err
		}

		fmt.Printf("%#016x\n", h)

		return nil
	case "mode":
		fmt.Println(d.Mode())

		return nil
	case "modes":
		for name, desc := range zdict.SupportedModes {
			fmt.Printf("%-10s %s\n", name, desc)
		}

		return nil
	case "clear":
		return d.Clear()
	case "dump":
		if len(args) != 1 {
			return errors.New("usage: dump <file>")
		}

		return dump(d, args[0])
	case "help":
		fmt.Println("commands:", strings.Join(commands, " "))

		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

// parseValue coerces int, float and bool literals to the matching handle
// kinds; anything else is a string.
func parseValue(s string) zdict.Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return zdict.Int(i)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return zdict.Float(f)
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return zdict.Bool(b)
	}

	return zdict.Str(s)
}

func render(v zdict.Value) string {
	if s, ok := v.(zdict.Str); ok {
		return string(s)
	}

	return fmt.Sprintf("%v", v)
}

// dump writes the entries as a JSON object in one atomic replace.
func dump(d *zdict.ZDict, path string) error {
	out := make(map[string]any, d.Len())

	for _, p := range d.Items() {
		key, ok := p.Key.(zdict.Str)
		if !ok {
			return fmt.Errorf("cannot dump non-string key %v", p.Key)
		}

		out[string(key)] = plain(p.Value)
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(path, strings.NewReader(string(buf)+"\n"))
}

func plain(v zdict.Value) any {
	switch x := v.(type) {
	case zdict.Str:
		return string(x)
	case zdict.Int:
		return int64(x)
	case zdict.Float:
		return float64(x)
	case zdict.Bool:
		return bool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
