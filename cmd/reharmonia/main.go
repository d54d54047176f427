package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reharmonia/browse"
	"reharmonia/compose"
	"reharmonia/midiexport"
	"reharmonia/report"
	"reharmonia/scoreexport"
	"reharmonia/singable"
)

// Flags set by parseArgs, consumed by every subcommand.
var (
	outPath string
	seed    int64 = 1
)

func main() {
	args := parseArgs(os.Args[1:])

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]

	switch command {
	case "compose":
		if len(args) < 2 {
			fmt.Println("Error: compose requires a track config file")
			printUsage()
			os.Exit(1)
		}
		composeTrack(args[1])
	case "export":
		if len(args) < 2 {
			fmt.Println("Error: export requires a track config file")
			printUsage()
			os.Exit(1)
		}
		exportTrack(args[1])
	case "score":
		if len(args) < 2 {
			fmt.Println("Error: score requires a track config file")
			printUsage()
			os.Exit(1)
		}
		scoreTrack(args[1])
	case "browse":
		if len(args) < 2 {
			fmt.Println("Error: browse requires a track config file")
			printUsage()
			os.Exit(1)
		}
		browseTrack(args[1])
	default:
		printUsage()
		os.Exit(1)
	}
}

// parseArgs extracts flags and returns remaining args.
func parseArgs(args []string) []string {
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--out" || arg == "-o":
			if i+1 < len(args) {
				outPath = args[i+1]
				i++
			} else {
				fmt.Println("Error: --out requires a path")
				os.Exit(1)
			}
		case strings.HasPrefix(arg, "--out="):
			outPath = strings.TrimPrefix(arg, "--out=")
		case arg == "--seed" || arg == "-s":
			if i+1 < len(args) {
				seed = parseSeed(args[i+1])
				i++
			} else {
				fmt.Println("Error: --seed requires a number")
				os.Exit(1)
			}
		case strings.HasPrefix(arg, "--seed="):
			seed = parseSeed(strings.TrimPrefix(arg, "--seed="))
		case arg == "--help" || arg == "-h":
			printUsage()
			os.Exit(0)
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining
}

func parseSeed(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Printf("Error: invalid seed %q\n", s)
		os.Exit(1)
	}
	return n
}

func loadPiece(filename string) (*compose.Piece, error) {
	cfg, err := compose.Load(filename)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	return compose.Assemble(cfg, rng)
}

func defaultOutput(filename, configured, ext string) string {
	if outPath != "" {
		return outPath
	}
	if configured != "" {
		return configured
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func renderSummary(piece *compose.Piece) string {
	return report.Render(report.Summary{
		Title:      piece.Config.Title,
		Scale:      piece.Scale,
		Pattern:    piece.Config.Pattern,
		TensionMin: piece.Config.Tension.Min,
		TensionMax: piece.Config.Tension.Max,
		Placements: piece.Placements,
	})
}

func composeTrack(filename string) {
	piece, err := loadPiece(filename)
	if err != nil {
		fmt.Printf("Error composing: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(renderSummary(piece))
}

func exportTrack(filename string) {
	piece, err := loadPiece(filename)
	if err != nil {
		fmt.Printf("Error composing: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(renderSummary(piece))

	out := defaultOutput(filename, piece.Config.Output.MIDI, ".mid")
	opts := midiexport.Options{
		Tempo: piece.Config.Tempo,
		Programs: map[int]uint8{
			0: uint8(piece.Config.Instruments.Melody),
			1: uint8(piece.Config.Instruments.Chords),
			2: uint8(piece.Config.Instruments.Bass),
		},
	}
	if err := midiexport.Write(out, piece.Mix, opts); err != nil {
		fmt.Printf("Error exporting MIDI: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n✓ Exported to: %s\n", out)
}

func scoreTrack(filename string) {
	piece, err := loadPiece(filename)
	if err != nil {
		fmt.Printf("Error composing: %v\n", err)
		os.Exit(1)
	}

	doc := scoreexport.Render(piece.Mix, piece.Placements)
	out := defaultOutput(filename, piece.Config.Output.Score, ".score.txt")

	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		fmt.Printf("Error writing score: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n✓ Exported to: %s\n", out)
}

func browseTrack(filename string) {
	piece, err := loadPiece(filename)
	if err != nil {
		fmt.Printf("Error composing: %v\n", err)
		os.Exit(1)
	}

	melodyKeys := singable.Materialize(piece.MelodySong)
	model := browse.New(piece.Config.Title, melodyKeys, piece.Placements)
	if err := browse.Run(model); err != nil {
		fmt.Printf("Error browsing: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Reharmonia v0.1")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  reharmonia compose <track.yaml>             Generate and print a summary")
	fmt.Println("  reharmonia export <track.yaml> [-o out]     Export to a MIDI file")
	fmt.Println("  reharmonia score <track.yaml> [-o out]      Export to a text score")
	fmt.Println("  reharmonia browse <track.yaml>              Page through the composition")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --out, -o <path>     Output file path")
	fmt.Println("  --seed, -s <n>       Random seed for generation (default 1)")
	fmt.Println("  --help, -h           Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  reharmonia compose examples/blues.yaml")
	fmt.Println("  reharmonia export examples/blues.yaml --out blues.mid")
	fmt.Println("  reharmonia browse examples/blues.yaml --seed 42")
}
