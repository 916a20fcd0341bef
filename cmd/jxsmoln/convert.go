package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	jxsmoln "github.com/reoring/jxsmoln"
	"github.com/reoring/jxsmoln/internal/stream"
)

// job converts one input into one output. An empty in means stdin.
type job struct {
	in  string
	out string
}

func extOf(path string) string { return filepath.Ext(path) }

// plan maps the positional arguments to jobs. Without --out-dir every input
// is written to stdout in order.
func plan(args []string, outDir, ext string) []job {
	if len(args) == 0 {
		return []job{{}}
	}
	jobs := make([]job, 0, len(args))
	for _, a := range args {
		j := job{in: a}
		if outDir != "" {
			base := strings.TrimSuffix(filepath.Base(a), filepath.Ext(a))
			j.out = filepath.Join(outDir, base+ext)
		}
		jobs = append(jobs, j)
	}
	return jobs
}

// runJobs executes jobs. Jobs writing to files run concurrently, up to limit
// at a time; jobs writing to stdout run one after another.
func runJobs(ctx context.Context, c *cobra.Command, jobs []job, limit int, convert func(in io.Reader, out io.Writer, j job) error) error {
	if len(jobs) > 0 && jobs[0].out == "" {
		for _, j := range jobs {
			if err := runOne(ctx, c, j, convert); err != nil {
				return err
			}
		}
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, j := range jobs {
		g.Go(func() error { return runOne(ctx, c, j, convert) })
	}
	return g.Wait()
}

func runOne(ctx context.Context, c *cobra.Command, j job, convert func(io.Reader, io.Writer, job) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var in io.Reader = c.InOrStdin()
	name := "<stdin>"
	if j.in != "" {
		f, err := os.Open(j.in)
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, j.in
	}
	if j.out == "" {
		if err := convert(bufio.NewReader(in), c.OutOrStdout(), j); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
	f, err := os.Create(j.out)
	if err != nil {
		return err
	}
	if err := convert(bufio.NewReader(in), f, j); err != nil {
		f.Close()
		os.Remove(j.out)
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}

type toXMLOptions struct {
	driver      driverFlag
	prefix      string
	indent      string
	declaration bool
	outDir      string
	jobs        int
	dupes       string
	split       bool
}

func newToXMLCmd(g *globalOptions) *cobra.Command {
	o := &toXMLOptions{driver: driverFlag{name: os.Getenv(envDriver)}}
	c := &cobra.Command{
		Use:   "to-xml [files...]",
		Short: "Convert JSON (or YAML) documents to jxsmoln XML",
		RunE: func(c *cobra.Command, args []string) error {
			return o.run(c, g, args)
		},
	}
	fs := c.Flags()
	fs.Var(&o.driver, "driver", "JSON driver (json|gojson|jsoniter|yaml); default by file extension, env "+envDriver)
	fs.StringVar(&o.prefix, "prefix", "j", "namespace prefix for jxsmoln elements (empty for a default namespace)")
	fs.StringVar(&o.indent, "indent", "", "indent string; empty writes compact XML")
	fs.BoolVar(&o.declaration, "declaration", false, "write an XML declaration")
	fs.StringVar(&o.outDir, "out-dir", "", "write <name>.xml files into this directory instead of stdout")
	fs.IntVar(&o.jobs, "jobs", 4, "number of files converted concurrently with --out-dir")
	fs.StringVar(&o.dupes, "duplicates", "error", "duplicate JSON keys: error|warn|ignore")
	fs.BoolVar(&o.split, "split", false, "write every top-level value of the input as its own document, one per line")
	return c
}

func parseSeverity(s string) (jxsmoln.Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return jxsmoln.SeverityError, nil
	case "warn":
		return jxsmoln.SeverityWarn, nil
	case "ignore":
		return jxsmoln.SeverityIgnore, nil
	}
	return 0, fmt.Errorf("invalid --duplicates %q (want error|warn|ignore)", s)
}

func (o *toXMLOptions) run(c *cobra.Command, g *globalOptions, args []string) error {
	sev, err := parseSeverity(o.dupes)
	if err != nil {
		return err
	}
	if o.outDir != "" {
		if err := os.MkdirAll(o.outDir, 0o755); err != nil {
			return err
		}
	}
	prefix := o.prefix
	jobs := plan(args, o.outDir, ".xml")
	err = runJobs(c.Context(), c, jobs, o.jobs, func(in io.Reader, out io.Writer, j job) error {
		drv, err := o.driver.resolve(j.in)
		if err != nil {
			return err
		}
		log := g.log.With().Str("input", j.in).Str("driver", drv.Name()).Logger()
		log.Debug().Msg("encoding")
		opt := jxsmoln.EncodeOpt{
			Prefix:         &prefix,
			OnDuplicateKey: sev,
			OnWarning: func(e *jxsmoln.Error) {
				log.Warn().Str("code", e.Code).Str("path", e.Path).Msg(e.Error())
			},
			Trace: g.tracer(),
		}
		if o.split {
			return o.encodeEach(out, drv.NewReader(in), opt)
		}
		if err := o.encode(out, drv.NewReader(in), opt); err != nil {
			return err
		}
		if o.indent == "" && j.out == "" {
			_, err = io.WriteString(out, "\n")
		}
		return err
	})
	if err != nil {
		g.log.Error().Err(err).Msg("to-xml failed")
	}
	return err
}

func (o *toXMLOptions) encode(out io.Writer, src jxsmoln.Source, opt jxsmoln.EncodeOpt) error {
	w := jxsmoln.NewXMLWriter(out, jxsmoln.WriterOpt{Indent: o.indent, Declaration: o.declaration})
	return jxsmoln.EncodeDocument(src, w, opt)
}

// encodeEach writes one document per top-level value, each ending in a
// newline.
func (o *toXMLOptions) encodeEach(out io.Writer, src jxsmoln.Source, opt jxsmoln.EncodeOpt) error {
	sp := stream.NewSplitter(src)
	for {
		v, ok, err := sp.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := o.encode(out, v, opt); err != nil {
			return err
		}
		if o.indent == "" {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
	}
}

type toJSONOptions struct {
	multi    bool
	indent   string
	outDir   string
	jobs     int
	maxDepth int
}

func newToJSONCmd(g *globalOptions) *cobra.Command {
	o := &toJSONOptions{}
	c := &cobra.Command{
		Use:   "to-json [files...]",
		Short: "Convert jxsmoln XML documents to JSON",
		RunE: func(c *cobra.Command, args []string) error {
			return o.run(c, g, args)
		},
	}
	fs := c.Flags()
	fs.BoolVar(&o.multi, "multi", false, "read a <multi> document and write one JSON value per line")
	fs.StringVar(&o.indent, "indent", "", "indent string; ignored with --multi")
	fs.StringVar(&o.outDir, "out-dir", "", "write <name>.json files into this directory instead of stdout")
	fs.IntVar(&o.jobs, "jobs", 4, "number of files converted concurrently with --out-dir")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "maximum nesting depth (0 for unlimited)")
	return c
}

func (o *toJSONOptions) run(c *cobra.Command, g *globalOptions, args []string) error {
	if o.outDir != "" {
		if err := os.MkdirAll(o.outDir, 0o755); err != nil {
			return err
		}
	}
	ext := ".json"
	if o.multi {
		ext = ".ndjson"
	}
	err := runJobs(c.Context(), c, plan(args, o.outDir, ext), o.jobs, func(in io.Reader, out io.Writer, j job) error {
		g.log.Debug().Str("input", j.in).Bool("multi", o.multi).Msg("decoding")
		opt := jxsmoln.DecodeOpt{MaxDepth: o.maxDepth, Trace: g.tracer()}
		cur := jxsmoln.XMLReader(in)
		if o.multi {
			return writeLines(out, jxsmoln.DecodeSequence(cur, opt))
		}
		v, err := jxsmoln.DecodeDocument(cur, opt)
		if err != nil {
			return err
		}
		return writeJSON(out, v, o.indent)
	})
	if err != nil {
		g.log.Error().Err(err).Msg("to-json failed")
	}
	return err
}

func writeJSON(out io.Writer, v jxsmoln.Value, indent string) error {
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	if indent != "" {
		var buf bytes.Buffer
		if err := gojson.Indent(&buf, b, "", indent); err != nil {
			return err
		}
		b = buf.Bytes()
	}
	b = append(b, '\n')
	_, err = out.Write(b)
	return err
}

func writeLines(out io.Writer, seq iter.Seq2[jxsmoln.Value, error]) error {
	for v, err := range seq {
		if err != nil {
			return err
		}
		if err := writeJSON(out, v, ""); err != nil {
			return err
		}
	}
	return nil
}
