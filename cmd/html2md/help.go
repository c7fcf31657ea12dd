package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML files to Markdown")
	fmt.Fprintln(w, "  fetch      Export a chat conversation from its URL")
	fmt.Fprintln(w, "  platforms  List the chat platforms fetch supports")
	fmt.Fprintln(w, "  doctor     Check the system for fetch")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2md help <command>' for details on a specific command.")
}

// printConversionUsage prints the flags shared by convert and fetch.
func printConversionUsage(w io.Writer) {
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --no-links              Keep link text, drop URLs")
	fmt.Fprintln(w, "      --no-images             Drop images")
	fmt.Fprintln(w, "      --keep-comments         Do not strip HTML comments first")
	fmt.Fprintln(w, "      --no-decode             Leave HTML entities encoded")
	fmt.Fprintln(w, "      --preserve-empty-lines  Keep runs of blank lines")
	fmt.Fprintln(w, "      --code-lang <s>         Fence language for unlabeled code blocks")
	fmt.Fprintln(w, "      --detect-lang           Guess unlabeled code languages")
	fmt.Fprintln(w, "      --base-url <url>        Resolve relative links and images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timing and markdown statistics")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML files to Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file, directory, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --resources             Write <name>.resources.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Front Matter:")
	fmt.Fprintln(w, "      --front-matter          Prepend a YAML header")
	fmt.Fprintln(w, "      --title <s>             Title (default: file name)")
	fmt.Fprintln(w, "      --platform <s>          Platform name")
	fmt.Fprintln(w, "      --url <url>             Source URL")
	fmt.Fprintln(w)
	printConversionUsage(w)
}

// printFetchUsage prints usage for the fetch command.
func printFetchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md fetch <url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load a chat conversation in headless Chrome and export it to Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  url      Conversation or share link")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output .md file or directory")
	fmt.Fprintln(w, "  -p, --platform <id>         Platform ID (default: detected from URL)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --filename-template <s> File name template")
	_, _ = io.WriteString(w, "                              %Y %M %D date, %h %m %s time, %t unix time\n")
	_, _ = io.WriteString(w, "                              %W platform, %H host, %T title\n")
	fmt.Fprintln(w, "      --no-front-matter       Omit the YAML header")
	fmt.Fprintln(w, "      --resources             Write <name>.resources.yaml")
	fmt.Fprintln(w)
	printConversionUsage(w)
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "fetch":
		printFetchUsage(env.Stdout)
	case "platforms":
		fmt.Fprintln(env.Stdout, "Usage: html2md platforms")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the chat platforms fetch supports.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: html2md doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the browser, environment and output directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
