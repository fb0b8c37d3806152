// Copyright 2025 Arcbreak Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pacekit/arcbreak/fas"
	"github.com/pacekit/arcbreak/graph"
	"github.com/pacekit/arcbreak/internal/log"
	"github.com/pacekit/arcbreak/internal/pipeline"
	"github.com/pacekit/arcbreak/internal/pipeline/steps"
	"github.com/pacekit/arcbreak/internal/utils"
	"github.com/pacekit/arcbreak/mcp"
	"github.com/pacekit/arcbreak/metis"
	"github.com/pacekit/arcbreak/version"
	"github.com/pacekit/arcbreak/workflow"
)

const Usage = `arcbreak <Action> [Path] [Flags]
Action:
   solve        compute a feedback arc set of the instance (file or stdin)
   verify       check a feedback arc set certificate against an instance
   gen          generate a random or complete instance in PACE format
   run          execute a workflow file (sequential, fail-fast)
   schema       print the JSON schema of the workflow file format
   watch        re-solve the instance whenever the file changes
   mcp          run as a MCP server for all instances (*.gr) in the directory
   version      print the version of arcbreak
`

func main() {
	flags := flag.NewFlagSet("arcbreak", flag.ExitOnError)

	flagHelp := flags.Bool("h", false, "Show help message.")
	flagVerbose := flags.Bool("verbose", false, "Verbose mode.")
	flagOutput := flags.String("o", "", "Output path.")

	flagAlgo := flags.String("algo", "greedy", "Solver algorithm: greedy or dc.")
	flagDot := flags.Bool("dot", false, "Emit the graph in DOT syntax with the arc set highlighted.")
	flagNoVerify := flags.Bool("no-verify", false, "Skip the certificate check after solving.")

	flagN := flags.Int("n", 16, "Number of vertices for gen.")
	flagP := flags.Float64("p", 0.2, "Edge probability for gen random.")
	flagSeed := flags.Int64("seed", 0, "Random seed for gen (0 means time-based).")

	flagDir := flags.String("C", "", "Working directory for workflow command steps.")
	flagEvent := flags.String("event", "", "Trigger event to check before running: push or pull_request.")
	flagBranch := flags.String("branch", "", "Branch for the trigger check.")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	action := strings.ToLower(os.Args[1])

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", version.Version)

	case "solve":
		uri := parseArgsAndFlags(flags, flagHelp, flagVerbose)
		runSolve(context.Background(), uri, *flagAlgo, *flagOutput, *flagDot, !*flagNoVerify, *flagVerbose)

	case "verify":
		if len(os.Args) < 4 {
			fmt.Fprintf(os.Stderr, "Usage: arcbreak verify <instance> <certificate>\n")
			os.Exit(1)
		}
		graphPath, certPath := os.Args[2], os.Args[3]
		if len(os.Args) > 4 {
			flags.Parse(os.Args[4:])
		}
		runVerify(graphPath, certPath)

	case "gen":
		kind := parseArgsAndFlags(flags, flagHelp, flagVerbose)
		runGen(kind, *flagN, *flagP, *flagSeed, *flagOutput)

	case "run":
		uri := parseArgsAndFlags(flags, flagHelp, flagVerbose)
		runWorkflow(context.Background(), uri, *flagDir, *flagEvent, *flagBranch, *flagVerbose)

	case "schema":
		data, err := workflow.Schema()
		if err != nil {
			log.Error("Failed to build schema: %v", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "%s\n", data)

	case "watch":
		uri := parseArgsAndFlags(flags, flagHelp, flagVerbose)
		runWatch(context.Background(), uri, *flagAlgo, *flagOutput, *flagDot, *flagVerbose)

	case "mcp":
		uri := parseArgsAndFlags(flags, flagHelp, flagVerbose)
		svr := mcp.NewServer(mcp.ServerOptions{
			ServerName:    "arcbreak",
			ServerVersion: version.Version,
			Verbose:       *flagVerbose,
			GraphToolsOptions: mcp.GraphToolsOptions{
				InstancesDir: uri,
			},
		})
		if err := svr.ServeStdio(); err != nil {
			log.Error("Failed to run MCP server: %v", err)
			os.Exit(1)
		}

	default:
		flags.Usage()
		os.Exit(1)
	}
}

func parseArgsAndFlags(flags *flag.FlagSet, flagHelp *bool, flagVerbose *bool) (uri string) {
	if len(os.Args) < 3 {
		flags.Usage()
		os.Exit(1)
	}
	uri = os.Args[2]
	if len(os.Args) > 3 {
		flags.Parse(os.Args[3:])
	}

	if flagHelp != nil && *flagHelp {
		flags.Usage()
		os.Exit(0)
	}
	if flagVerbose != nil && *flagVerbose {
		log.SetLogLevel(log.DebugLevel)
	}
	return uri
}

// runSolve executes the parse -> solve -> verify -> write pipeline.
func runSolve(ctx context.Context, uri, algo, output string, dotOut, verify, verbose bool) {
	st := pipeline.NewRunState(fmt.Sprintf("%d", time.Now().UnixNano()))
	st.InputPath = uri
	st.OutputPath = output
	st.Algorithm = algo

	stepList := []pipeline.Step{steps.ParseStep{}, steps.SolveStep{}}
	if verify {
		stepList = append(stepList, steps.VerifyStep{})
	}
	stepList = append(stepList, steps.WriteStep{Dot: dotOut})

	p := &pipeline.Pipeline{Steps: stepList}
	err := p.Run(ctx, st)
	reportHistory(st, verbose)
	if err != nil {
		log.Error("Solve failed: %v", err)
		os.Exit(1)
	}
	log.Info("Arc set of size %d written", len(st.ArcSet))
}

func runVerify(graphPath, certPath string) {
	g, err := metis.GraphFromFile(graphPath)
	if err != nil {
		log.Error("Failed to load instance: %v", err)
		os.Exit(1)
	}
	set, err := readCertificate(certPath)
	if err != nil {
		log.Error("Failed to load certificate: %v", err)
		os.Exit(1)
	}
	if !fas.Verify(g, set) {
		log.Error("Certificate of size %d leaves the graph cyclic", len(set))
		os.Exit(1)
	}
	log.Info("Certificate OK: %d arcs break all cycles", len(set))
}

func readCertificate(path string) ([]graph.Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var set []graph.Edge
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "%") {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("bad certificate line %q: want \"<from> <to>\"", line)
		}
		var from, to uint32
		if _, err := fmt.Sscanf(fields[0]+" "+fields[1], "%d %d", &from, &to); err != nil {
			return nil, fmt.Errorf("bad certificate line %q: %v", line, err)
		}
		set = append(set, graph.Edge{From: graph.VertexID(from), To: graph.VertexID(to)})
	}
	return set, nil
}

func runGen(kind string, n int, p float64, seed int64, output string) {
	var g *graph.Digraph
	switch kind {
	case "complete":
		g = graph.Complete(n)
	case "random":
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		var err error
		g, err = graph.Random(n, p, rand.New(rand.NewSource(seed)))
		if err != nil {
			log.Error("Failed to generate: %v", err)
			os.Exit(1)
		}
	default:
		log.Error("Unknown instance kind %q (want random or complete)", kind)
		os.Exit(1)
	}

	// gen numbers vertices 0..n-1; shift to the 1-based PACE numbering.
	edges := g.AllEdges()
	for i := range edges {
		edges[i].From++
		edges[i].To++
	}
	vertices := make([]graph.VertexID, 0, n)
	for v := 1; v <= n; v++ {
		vertices = append(vertices, graph.VertexID(v))
	}
	shifted := graph.FromVerticesAndEdges(vertices, edges)

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			log.Error("Failed to create output: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := metis.Write(out, shifted); err != nil {
		log.Error("Failed to write instance: %v", err)
		os.Exit(1)
	}
}

func runWorkflow(ctx context.Context, uri, dir, event, branch string, verbose bool) {
	def, err := workflow.Load(uri)
	if err != nil {
		log.Error("Failed to load workflow: %v", err)
		os.Exit(1)
	}
	if err := def.Validate(); err != nil {
		log.Error("Invalid workflow: %v", err)
		os.Exit(1)
	}
	if event != "" && !def.On.Matches(event, branch) {
		log.Info("Workflow %s is not triggered by %s on %q, nothing to do", def.Name, event, branch)
		return
	}

	st, runErr := workflow.Run(ctx, def, workflow.Options{Dir: dir})
	reportHistory(st, verbose)
	if runErr != nil {
		log.Error("Workflow %s failed: %v", def.Name, runErr)
		os.Exit(1)
	}
	log.Info("Workflow %s completed successfully", def.Name)
}

func runWatch(ctx context.Context, uri, algo, output string, dotOut, verbose bool) {
	runOnce := func() {
		st := pipeline.NewRunState(fmt.Sprintf("%d", time.Now().UnixNano()))
		st.InputPath = uri
		st.OutputPath = output
		st.Algorithm = algo
		p := &pipeline.Pipeline{Steps: []pipeline.Step{
			steps.ParseStep{}, steps.SolveStep{}, steps.VerifyStep{}, steps.WriteStep{Dot: dotOut},
		}}
		if err := p.Run(ctx, st); err != nil {
			log.Error("Solve failed: %v", err)
			return
		}
		reportHistory(st, verbose)
		log.Info("Arc set of size %d written", len(st.ArcSet))
	}

	runOnce()

	abs, err := filepath.Abs(uri)
	if err != nil {
		log.Error("Failed to resolve %s: %v", uri, err)
		os.Exit(1)
	}
	err = utils.WatchDir(filepath.Dir(abs), func(op fsnotify.Op, file string) {
		if file != abs || op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		log.Info("Instance changed, re-solving")
		runOnce()
	})
	if err != nil {
		log.Error("Failed to watch %s: %v", uri, err)
		os.Exit(1)
	}
	select {} // block until interrupted
}

func reportHistory(st *pipeline.RunState, verbose bool) {
	if st == nil || len(st.History) == 0 {
		return
	}
	last := st.History[len(st.History)-1]
	log.Info("Pipeline: last step=%s, attempt=%d, status=%s", last.StepName, last.Attempt, last.Status)
	if !verbose {
		return
	}
	for _, rec := range st.History {
		if rec.Error != "" {
			log.Debug("  step=%s attempt=%d status=%s error=%s", rec.StepName, rec.Attempt, rec.Status, rec.Error)
		} else {
			log.Debug("  step=%s attempt=%d status=%s", rec.StepName, rec.Attempt, rec.Status)
		}
	}
}
