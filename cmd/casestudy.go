package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/culstrup/fireflies-raycast/internal/casestudy"
	"github.com/culstrup/fireflies-raycast/internal/clipboard"
	"github.com/culstrup/fireflies-raycast/internal/config"
	"github.com/culstrup/fireflies-raycast/internal/fireflies"
	"github.com/culstrup/fireflies-raycast/internal/gemini"
)

// Output destinations for the generated case study.
const (
	OutputClipboard = "clipboard"
	OutputStdout    = "stdout"
	OutputFile      = "file"
)

func newCaseStudyCmd() *cobra.Command {
	var (
		name             string
		output           string
		outputFile       string
		participantsFile string
		excerpts         bool
		debugMode        bool
	)

	cmd := &cobra.Command{
		Use:   "casestudy [domain] [days-back]",
		Short: "Generate a marketing case study from a client's meetings",
		Long: `Search your meeting history for a client, identified by email domain or by
participant name, and draft a marketing case study from the transcripts with
Gemini.

The search covers the last 180 days by default; pass a second argument to
widen or narrow the window. The result lands on the clipboard unless --output
says otherwise.

Examples:
  flycast casestudy acme.com
  flycast casestudy acme.com 365 --output file
  flycast casestudy --name "Jane Smith" --excerpts --output stdout`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(debugMode)

			req := casestudy.Request{ParticipantName: name, Excerpts: excerpts}
			if len(args) > 0 {
				req.Domain = args[0]
			}
			if req.Domain == "" && req.ParticipantName == "" {
				return fmt.Errorf("a client domain argument or --name is required")
			}
			if req.Domain != "" && req.ParticipantName != "" {
				return fmt.Errorf("the domain argument and --name are mutually exclusive")
			}

			cfg := config.Load()
			if len(args) > 1 {
				daysBack, err := strconv.Atoi(args[1])
				if err != nil || daysBack <= 0 {
					return fmt.Errorf("days-back must be a positive number, got %q", args[1])
				}
				req.DaysBack = daysBack
			} else {
				req.DaysBack = cfg.DaysBack
			}

			if err := cfg.RequireGemini(); err != nil {
				return err
			}

			if req.Domain != "" {
				mapping, err := casestudy.LoadDomainParticipants(participantsFile)
				if err != nil {
					return err
				}
				if names := mapping.ForDomain(req.Domain); len(names) > 0 {
					req.KnownParticipants = names
					fmt.Printf("FlyCast: Known participants for %s: %s\n", req.Domain, strings.Join(names, ", "))
				}
			}

			firefliesClient, err := fireflies.NewClient(cfg.FirefliesAPIKey)
			if err != nil {
				return err
			}
			geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return err
			}

			generator := casestudy.NewGenerator(firefliesClient, geminiClient,
				casestudy.WithCharBudget(cfg.CharBudget),
				casestudy.WithProgress(func(message string) {
					fmt.Printf("FlyCast: %s\n", message)
				}))

			return runCaseStudy(cmd.Context(), generator, req, output, outputFile)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Search by participant name instead of email domain")
	cmd.Flags().StringVar(&output, "output", OutputClipboard, "Where to output the case study: clipboard, stdout or file")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "File path when using --output file")
	cmd.Flags().StringVar(&participantsFile, "participants-file", casestudy.DefaultMappingFile,
		"JSON file mapping client domains to known participant names")
	cmd.Flags().BoolVar(&excerpts, "excerpts", false, "Send key excerpts instead of full transcripts to Gemini")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runCaseStudy(ctx context.Context, generator *casestudy.Generator, req casestudy.Request, output, outputFile string) error {
	switch output {
	case OutputClipboard, OutputStdout, OutputFile:
	default:
		return fmt.Errorf("invalid --output value %q (expected clipboard, stdout or file)", output)
	}

	result, err := generator.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("FlyCast Error: %w", err)
	}
	if result == nil {
		if req.Domain != "" {
			fmt.Printf("FlyCast: No meetings found with participants from @%s\n", req.Domain)
		} else {
			fmt.Printf("FlyCast: No meetings found with participant '%s'\n", req.ParticipantName)
		}
		return nil
	}

	fmt.Printf("FlyCast: Case study generated in %.2fs\n", result.Duration.Seconds())

	return deliverCaseStudy(result.CaseStudy, req, output, outputFile)
}

// deliverCaseStudy writes the case study to the requested destination.
func deliverCaseStudy(caseStudy string, req casestudy.Request, output, outputFile string) error {
	switch output {
	case OutputStdout:
		fmt.Println("\n" + strings.Repeat("=", 80))
		fmt.Println(caseStudy)
		return nil

	case OutputFile:
		path := outputFile
		if path == "" {
			path = defaultCaseStudyPath(req, time.Now())
		}
		if err := os.WriteFile(path, []byte(caseStudy), 0644); err != nil {
			return fmt.Errorf("failed to write case study: %w", err)
		}
		fmt.Printf("\nFlyCast: Case study saved to %s\n", path)
		return nil

	default:
		if err := clipboard.Copy(caseStudy); err != nil {
			return fmt.Errorf("failed to copy case study to clipboard: %w", err)
		}
		fmt.Println("\nFlyCast: Case study copied to clipboard!")
		fmt.Println("FlyCast: Paste it anywhere with Cmd+V")
		return nil
	}
}

// defaultCaseStudyPath builds the output filename used when --output file is
// given without --output-file.
func defaultCaseStudyPath(req casestudy.Request, now time.Time) string {
	subject := req.Domain
	if subject == "" {
		subject = strings.ReplaceAll(req.ParticipantName, " ", "_")
	}
	return fmt.Sprintf("case_study_%s_%s.md", subject, now.Format("20060102_150405"))
}
