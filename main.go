// Command acamark compiles academic Markdown (.mda) documents into a
// fully resolved tree: check validates a document, dump emits the
// resolved side tables as JSON for downstream renderers.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/acamark/acamark/ast"
	"github.com/acamark/acamark/parser"
	"github.com/acamark/acamark/resolve"
)

func newLogger(debug bool) *zap.SugaredLogger {
	var z *zap.Logger
	var err error

	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return z.Sugar()
}

// compile parses and resolves one input file. Relative bibliography paths
// are anchored at the file's directory.
func compile(inputFileName string, strict bool, sugar *zap.SugaredLogger) (*ast.ResolvedDocument, error) {
	src, err := os.ReadFile(inputFileName)
	if err != nil {
		return nil, err
	}

	doc, err := parser.Parse(inputFileName, src)
	if err != nil {
		return nil, err
	}

	cfg := resolve.Config{
		BasePath:         filepath.Dir(inputFileName),
		StrictCitations:  strict,
		StrictReferences: strict,
		Logger:           sugar,
	}
	return resolve.Resolve(doc, cfg)
}

func check(c *cli.Context) error {
	if !c.Args().Present() {
		return fmt.Errorf("no input file provided")
	}
	inputFileName := c.Args().First()

	debug := c.Bool("debug")
	sugar := newLogger(debug)
	defer sugar.Sync()

	resolved, err := compile(inputFileName, c.Bool("strict"), sugar)
	if err != nil {
		return err
	}

	if debug {
		for _, lang := range unknownLanguages(resolved.Document.Blocks) {
			sugar.Infow("code language not in the lexer registry", "language", lang)
		}
	}

	fmt.Printf("%v: ok (%d labels, %d footnotes, %d citations)\n",
		inputFileName, len(resolved.Labels), len(resolved.Footnotes), len(resolved.CitationOrder))
	return nil
}

// dumpOutput is the JSON contract handed to renderers.
type dumpOutput struct {
	Title          string                   `json:"title,omitempty"`
	Labels         map[string]ast.LabelInfo `json:"labels"`
	SectionNumbers map[string]string        `json:"sectionNumbers"`
	EnvNumbers     map[string]int           `json:"envNumbers"`
	Footnotes      map[string]string        `json:"footnotes"`
	CitationOrder  []string                 `json:"citationOrder"`
}

func dump(c *cli.Context) error {
	if !c.Args().Present() {
		return fmt.Errorf("no input file provided")
	}
	inputFileName := c.Args().First()

	sugar := newLogger(c.Bool("debug"))
	defer sugar.Sync()

	resolved, err := compile(inputFileName, false, sugar)
	if err != nil {
		return err
	}

	out := dumpOutput{
		Title:          resolved.Document.Metadata.Title,
		Labels:         resolved.Labels,
		SectionNumbers: resolved.SectionNumbers,
		EnvNumbers:     resolved.EnvNumbers,
		Footnotes:      make(map[string]string, len(resolved.Footnotes)),
		CitationOrder:  resolved.CitationOrder,
	}
	for id, body := range resolved.Footnotes {
		out.Footnotes[id] = ast.InlinesText(body)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	outputFileName := c.String("output")
	if outputFileName == "" {
		ext := path.Ext(inputFileName)
		if ext == "" {
			outputFileName = inputFileName + ".json"
		} else {
			outputFileName = strings.Replace(inputFileName, ext, ".json", 1)
		}
	}
	if outputFileName == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Printf("processing %v and generating %v\n", inputFileName, outputFileName)
	return os.WriteFile(outputFileName, data, 0664)
}

// unknownLanguages lists code-fence tags chroma has no lexer for.
func unknownLanguages(blocks []ast.Block) []string {
	seen := map[string]bool{}
	var unknown []string

	var walk func([]ast.Block)
	walk = func(blocks []ast.Block) {
		for _, b := range blocks {
			switch n := b.(type) {
			case *ast.CodeBlock:
				if n.Language == "" || seen[n.Language] {
					continue
				}
				seen[n.Language] = true
				if lexers.Get(n.Language) == nil {
					unknown = append(unknown, n.Language)
				}
			case *ast.BlockQuote:
				walk(n.Blocks)
			case *ast.Environment:
				walk(n.Blocks)
			case *ast.Abstract:
				walk(n.Blocks)
			case *ast.List:
				for _, item := range n.Items {
					walk(item.Blocks)
				}
			case *ast.DescriptionList:
				for _, item := range n.Items {
					walk(item.Definition)
				}
			}
		}
	}
	walk(blocks)
	return unknown
}

func main() {

	app := &cli.App{
		Name:      "acamark",
		Version:   "v0.1",
		Compiled:  time.Now(),
		Usage:     "compile academic Markdown into a resolved document tree",
		UsageText: "acamark command [options] INPUT_FILE",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "parse and resolve a document, reporting problems",
				ArgsUsage: "INPUT_FILE",
				Action:    check,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "strict",
						Aliases: []string{"s"},
						Usage:   "treat unknown references and citations as errors",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Aliases: []string{"d"},
						Usage:   "run in debug mode",
					},
				},
			},
			{
				Name:      "dump",
				Usage:     "emit the resolved side tables as JSON",
				ArgsUsage: "INPUT_FILE",
				Action:    dump,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write JSON to `FILE` (default is input file name with extension .json, - for stdout)",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Aliases: []string{"d"},
						Usage:   "run in debug mode",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
