package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type StepResult struct {
	Name      string `json:"name"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type Report struct {
	SSEURL     string       `json:"sse_url"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMs int64        `json:"duration_ms"`
	Steps      []StepResult `json:"steps"`
	Passed     bool         `json:"passed"`
}

func main() {
	sseURL := flag.String("sse-url", "http://localhost:8080/sse", "SSE endpoint URL")
	class := flag.String("class", "Air_Handling_Unit", "Known Brick class used by the steps")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-tester", Version: "dev"}, nil)
	transport := mcp.NewSSEClientTransport(*sseURL, nil)

	start := time.Now()
	report := Report{SSEURL: *sseURL, StartedAt: start}
	steps := make([]StepResult, 0, 16)

	// Connect
	tConn := time.Now()
	connRes := StepResult{Name: "connect"}
	session, err := client.Connect(ctx, transport)
	if err != nil {
		connRes.Success = false
		connRes.Error = err.Error()
		connRes.ElapsedMs = elapsedMsSince(tConn)
		steps = append(steps, connRes)
		report.Steps = steps
		report.DurationMs = elapsedMsSince(start)
		report.Passed = false
		writeReport(report)
		os.Exit(1)
	}
	defer session.Close()
	connRes.Success = true
	connRes.ElapsedMs = elapsedMsSince(tConn)
	steps = append(steps, connRes)

	// Individual steps
	steps = append(steps, runListTools(ctx, session))
	steps = append(steps, runTool(ctx, session, "health_check", apptype.HealthArgs{}, nil))
	steps = append(steps, runTool(ctx, session, "get_terms", apptype.ListArgs{}, expectTerm(*class)))
	steps = append(steps, runTool(ctx, session, "get_properties", apptype.ListArgs{}, nil))
	steps = append(steps, runTool(ctx, session, "get_all_brick_tags", apptype.ListArgs{}, nil))
	steps = append(steps, runTool(ctx, session, "validate_brick_term", apptype.ValidateTermArgs{Term: *class}, expectValid(true)))
	steps = append(steps, runTool(ctx, session, "validate_brick_term", apptype.ValidateTermArgs{Term: *class + "x"}, expectValid(false)))
	steps = append(steps, runTool(ctx, session, "validate_brick_tag", apptype.ValidateTagArgs{Tag: "Air"}, nil))
	steps = append(steps, runTool(ctx, session, "expand_abbreviation", apptype.ExpandAbbreviationArgs{Abbreviation: "AHU"}, nil))
	steps = append(steps, runTool(ctx, session, "get_subclasses", apptype.GetSubclassesArgs{ParentClass: "Equipment"}, nil))
	steps = append(steps, runTool(ctx, session, "get_brick_tags", apptype.GetBrickTagsArgs{Term: *class}, nil))
	steps = append(steps, runTool(ctx, session, "get_possible_properties", apptype.ClassArgs{Class: *class}, nil))
	steps = append(steps, runTool(ctx, session, "get_definition_brick", apptype.ClassArgs{Class: *class}, nil))
	steps = append(steps, runReadResource(ctx, session, "rdf://describe/"+*class))

	// finalize report
	report.Steps = steps
	report.DurationMs = elapsedMsSince(start)
	report.Passed = true
	for _, s := range steps {
		if !s.Success {
			report.Passed = false
			break
		}
	}

	writeReport(report)

	if !report.Passed {
		os.Exit(1)
	}
}

func writeReport(report Report) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

func runListTools(ctx context.Context, session *mcp.ClientSession) StepResult {
	t0 := time.Now()
	res := StepResult{Name: "list_tools"}
	if _, err := session.ListTools(ctx, &mcp.ListToolsParams{}); err != nil {
		res.Success = false
		res.Error = err.Error()
	} else {
		res.Success = true
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

// runTool calls a tool and, when check is set, inspects its structured result
func runTool(ctx context.Context, session *mcp.ClientSession, name string, args any, check func(json.RawMessage) error) StepResult {
	t0 := time.Now()
	res := StepResult{Name: name}
	raw, _ := json.Marshal(args)
	out, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: json.RawMessage(raw)})
	switch {
	case err != nil:
		res.Error = err.Error()
	case out.IsError:
		res.Error = fmt.Sprintf("tool error: %v", textOf(out))
	case check != nil:
		structured, _ := json.Marshal(out.StructuredContent)
		if err := check(structured); err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
		}
	default:
		res.Success = true
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

func runReadResource(ctx context.Context, session *mcp.ClientSession, uri string) StepResult {
	t0 := time.Now()
	res := StepResult{Name: "read_resource"}
	out, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
	switch {
	case err != nil:
		res.Error = err.Error()
	case len(out.Contents) == 0 || out.Contents[0].Text == "":
		res.Error = fmt.Sprintf("empty resource %s", uri)
	default:
		res.Success = true
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

func expectTerm(term string) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var out apptype.TermsResult
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		for _, t := range out.Terms {
			if t == term {
				return nil
			}
		}
		return fmt.Errorf("%s not listed", term)
	}
}

func expectValid(want bool) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var out apptype.ValidationResult
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		if out.Valid != want {
			return fmt.Errorf("valid=%t, want %t", out.Valid, want)
		}
		if !want && len(out.Suggestions) == 0 {
			return fmt.Errorf("no suggestions for %s", out.Term)
		}
		return nil
	}
}

func textOf(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// elapsedMsSince returns max(1ms, elapsed) to avoid zero durations on fast steps
func elapsedMsSince(t0 time.Time) int64 {
	d := time.Since(t0) / time.Millisecond
	if d <= 0 {
		return 1
	}
	return int64(d)
}
