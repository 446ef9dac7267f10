package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/samhita/pkg/akn"
	"github.com/coolbeans/samhita/pkg/model"
	"github.com/coolbeans/samhita/pkg/parse"
	"github.com/coolbeans/samhita/pkg/pdftext"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "samhita",
		Short: "Indian legal text to Akoma Ntoso converter",
		Long: `Samhita converts plain-text Indian legal documents (Constitution
articles, Acts, Bills, Rules) into Akoma Ntoso 3.0 XML.

It recovers the implicit hierarchy of parts, chapters, articles, sections,
clauses, provisos, and explanations from unstructured text and re-emits it
as schema-conformant XML with stable element identifiers and FRBR metadata.`,
		Version: version,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(extractTextCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a legal document to Akoma Ntoso XML",
		Long: `Convert a plain-text, PDF, or structured-JSON legal document to
Akoma Ntoso XML.

Example:
  samhita convert constitution.txt --type constitution -o constitution.xml
  samhita convert act.pdf --title "The Evidence Act" --year 1872
  samhita convert prebuilt.json --json -o out.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output, _ := cmd.Flags().GetString("output")
			title, _ := cmd.Flags().GetString("title")
			docType, _ := cmd.Flags().GetString("type")
			country, _ := cmd.Flags().GetString("country")
			language, _ := cmd.Flags().GetString("language")
			number, _ := cmd.Flags().GetString("number")
			year, _ := cmd.Flags().GetString("year")
			asJSON, _ := cmd.Flags().GetBool("json")
			profilePath, _ := cmd.Flags().GetString("profile")
			strict, _ := cmd.Flags().GetBool("strict")
			preview, _ := cmd.Flags().GetBool("preview")

			doc, diags, err := loadDocument(input, asJSON, func() (*parse.Parser, error) {
				if title == "" {
					title = fileStem(input)
				}
				opts := []parse.Option{
					parse.WithHint(parse.Hint(docType)),
					parse.WithTitle(title),
					parse.WithCountry(country),
					parse.WithLanguage(language),
				}
				if profilePath != "" {
					profile, err := parse.LoadProfile(profilePath)
					if err != nil {
						return nil, err
					}
					opts = append(opts, parse.WithProfile(profile))
				}
				return parse.New(opts...), nil
			})
			if err != nil {
				return err
			}

			if number != "" {
				doc.Metadata.Number = number
			}
			if year != "" {
				doc.Metadata.Year = year
			}

			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d)
			}
			if warnings := model.CountWarnings(diags); strict && warnings > 0 {
				return fmt.Errorf("%d warning diagnostics in strict mode", warnings)
			}

			converter := akn.New(akn.WithGeneratedAt(time.Now()))
			xmlBytes, err := converter.Bytes(doc)
			if err != nil {
				return err
			}

			if preview {
				printPreview(string(xmlBytes), 40)
				return nil
			}
			if output == "" {
				fmt.Print(string(xmlBytes))
				return nil
			}
			if err := os.WriteFile(output, xmlBytes, 0644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output XML file path (default: stdout)")
	cmd.Flags().String("title", "", "Document title (default: input file name)")
	cmd.Flags().String("type", "auto", "Document type hint: constitution, act, bill, ordinance, regulation, auto")
	cmd.Flags().String("country", "IN", "Country code")
	cmd.Flags().String("language", "eng", "Language code")
	cmd.Flags().String("number", "", "Identifying act/bill number")
	cmd.Flags().String("year", "", "Enactment year")
	cmd.Flags().Bool("json", false, "Input is a structured JSON document (skips parsing)")
	cmd.Flags().String("profile", "", "YAML pattern profile extending the heading table")
	cmd.Flags().Bool("strict", false, "Fail when any warning diagnostics are emitted")
	cmd.Flags().Bool("preview", false, "Print the first lines of the XML instead of writing it")

	return cmd
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Parse a document and report its recovered structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			docType, _ := cmd.Flags().GetString("type")
			asJSON, _ := cmd.Flags().GetBool("json")

			doc, diags, err := loadDocument(input, asJSON, func() (*parse.Parser, error) {
				return parse.New(
					parse.WithHint(parse.Hint(docType)),
					parse.WithTitle(fileStem(input)),
				), nil
			})
			if err != nil {
				return err
			}

			stats := doc.Statistics()
			fmt.Printf("Title:      %s\n", doc.Metadata.Title)
			fmt.Printf("Type:       %s\n", doc.Metadata.Type)
			if doc.Unstructured {
				fmt.Println("Structure:  none (unstructured fallback)")
			} else {
				fmt.Printf("Parts:      %d\n", stats.Parts)
				fmt.Printf("Chapters:   %d\n", stats.Chapters)
				fmt.Printf("Provisions: %d\n", stats.Provisions)
				fmt.Printf("Clauses:    %d\n", stats.Clauses)
				fmt.Printf("Blocks:     %d\n", stats.Blocks)
				fmt.Printf("Schedules:  %d\n", stats.Schedules)
			}

			if len(diags) > 0 {
				fmt.Printf("\nDiagnostics (%d):\n", len(diags))
				for _, d := range diags {
					fmt.Printf("  %s\n", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("type", "auto", "Document type hint")
	cmd.Flags().Bool("json", false, "Input is a structured JSON document")

	return cmd
}

func extractTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-text <input.pdf>",
		Short: "Extract cleaned plain text from a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			text, err := pdftext.ExtractText(args[0])
			if err != nil {
				return err
			}
			text = pdftext.Clean(text)

			if output == "" {
				fmt.Print(text)
				return nil
			}
			if err := os.WriteFile(output, []byte(text), 0644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output text file path (default: stdout)")

	return cmd
}

// loadDocument reads the input through the appropriate path: structured
// JSON, PDF extraction, or plain-text parsing.
func loadDocument(input string, asJSON bool, makeParser func() (*parse.Parser, error)) (*model.LegalDocument, []model.Diagnostic, error) {
	if asJSON {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, nil, fmt.Errorf("reading input: %w", err)
		}
		doc, err := model.LoadJSON(data)
		if err != nil {
			return nil, nil, err
		}
		return doc, nil, nil
	}

	var lines []string
	if strings.EqualFold(filepath.Ext(input), ".pdf") {
		extracted, err := pdftext.ExtractLines(input)
		if err != nil {
			return nil, nil, err
		}
		lines = extracted
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, nil, fmt.Errorf("reading input: %w", err)
		}
		lines = strings.Split(string(data), "\n")
	}

	parser, err := makeParser()
	if err != nil {
		return nil, nil, err
	}

	doc, diags := parser.ParseLines(parse.Preprocess(lines))
	return doc, diags, nil
}

// printPreview prints the first n lines of the output with a truncation
// marker.
func printPreview(xml string, n int) {
	lines := strings.Split(xml, "\n")
	if len(lines) <= n {
		fmt.Print(xml)
		return
	}
	fmt.Println(strings.Join(lines[:n], "\n"))
	fmt.Printf("... (%d more lines)\n", len(lines)-n)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
