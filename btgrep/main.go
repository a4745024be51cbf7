package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/mfroeh/btgrep/regex"
)

var submatchColors = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

var cli struct {
	Pattern string   `short:"E" required:"" name:"pattern" help:"Regex pattern to use in search" placeholder:"PATTERN"`
	Replace *string  `short:"r" help:"Print matching lines with every match replaced, $n expands to the n-th capture" placeholder:"TEMPLATE"`
	Color   string   `enum:"auto,always,never" default:"auto" help:"When to highlight matches: auto, always or never"`
	Debug   bool     `help:"Log the compiled pattern before searching"`
	Paths   []string `arg:"" optional:"" name:"path" help:"Paths to search, a single line is read from stdin if omitted" type:"path"`
}

// searcher prints the lines of files that match re.
type searcher struct {
	out io.Writer
	re  regex.Regex
	// replace is nil when matches are highlighted instead
	replace *string
}

func main() {
	kong.Parse(&cli,
		kong.Name("btgrep"),
		kong.Description("Searches a line from stdin, or files and directories, for a regex pattern."),
		kong.UsageOnError(),
	)
	log.SetFlags(0)
	log.SetPrefix("btgrep: ")

	re, err := regex.Compile(cli.Pattern)
	if err != nil {
		log.Fatalf("failed to build regex: %v", err)
	}
	if cli.Debug {
		log.Printf("compiled %q into %d nodes: %s", re.String(), len(re.Pattern()), re.Pattern())
	}

	color.NoColor = !useColor(cli.Color, os.Stdout)
	out := colorable.NewColorableStdout()

	if len(cli.Paths) == 0 {
		line, err := readLine(os.Stdin)
		if err != nil {
			log.Fatalf("failed to read input: %v", err)
		}
		if !searchLine(out, re, line) {
			os.Exit(1)
		}
		return
	}

	s := searcher{out: out, re: re, replace: cli.Replace}
	found := false
	for _, path := range cli.Paths {
		info, err := os.Lstat(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		var matched bool
		if info.IsDir() {
			matched, err = s.recursivelySearchDir(path)
		} else {
			matched, err = s.searchFile(path)
		}

		if err != nil {
			log.Fatalf("%v", err)
		}
		found = found || matched
	}

	if !found {
		os.Exit(1)
	}
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readLine reads a single line from r without its line terminator.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func searchLine(out io.Writer, re regex.Regex, line string) bool {
	if re.Match(line) {
		fmt.Fprintln(out, "Match successful")
		return true
	}
	fmt.Fprintln(out, "Match failed")
	return false
}

func (s searcher) recursivelySearchDir(path string) (bool, error) {
	found := false
	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// resolve symlinks, broken ones are ignored
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		// symlink may resolve to a directory, in which case we just ignore it
		if info.IsDir() {
			return nil
		}

		matched, err := s.searchFile(path)
		found = found || matched
		return err
	})

	return found, err
}

func (s searcher) searchFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	printFileHeader := false
	for i, line := range strings.Split(string(content), "\n") {
		matches := s.re.FindAllSubmatches(line, -1)
		if len(matches) == 0 {
			continue
		}

		if !printFileHeader {
			printFileHeader = true
			fmt.Fprintln(s.out, path, ":")
		}

		if s.replace != nil {
			fmt.Fprintf(s.out, "%d:%s\n", i+1, s.re.Replace(line, *s.replace))
			continue
		}

		out := strings.Builder{}
		lastMatchEnd := 0
		for _, match := range matches {
			out.WriteString(line[lastMatchEnd:match[0].Offset])
			out.WriteString(formatMatch(match))
			lastMatchEnd = match[0].Offset + len(match[0].Str)
		}
		out.WriteString(line[lastMatchEnd:])
		fmt.Fprintf(s.out, "%d:%s\n", i+1, out.String())
	}

	if printFileHeader {
		fmt.Fprintln(s.out)
	}

	return printFileHeader, nil
}

// formatMatch colors the whole match and every captured group in its own color.
// Groups that did not capture or that overlap an earlier group keep the color of the whole match.
func formatMatch(match []regex.Submatch) string {
	fullMatch := match[0].Str
	if len(match) == 1 || len(match) > len(submatchColors) {
		return submatchColors[0].Sprint(fullMatch)
	}

	type coloredSubmatch struct {
		regex.Submatch
		color *color.Color
	}
	var groups []coloredSubmatch
	for i, sm := range match[1:] {
		if sm.Offset >= 0 && sm.Str != "" {
			groups = append(groups, coloredSubmatch{Submatch: sm, color: submatchColors[i+1]})
		}
	}
	slices.SortStableFunc(groups, func(a, b coloredSubmatch) int {
		return a.Offset - b.Offset
	})

	out := strings.Builder{}
	matchOff := 0
	for _, sm := range groups {
		offRelativeToMatch := sm.Offset - match[0].Offset
		if offRelativeToMatch < matchOff {
			continue
		}
		submatchColors[0].Fprint(&out, fullMatch[matchOff:offRelativeToMatch])
		sm.color.Fprint(&out, sm.Str)
		matchOff = offRelativeToMatch + len(sm.Str)
	}
	submatchColors[0].Fprint(&out, fullMatch[matchOff:])
	return out.String()
}
