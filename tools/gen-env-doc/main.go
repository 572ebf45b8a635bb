//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"strings"

	cfg "github.com/ArkLabsHQ/bitpay-client/pkg/config"
)

func main() {
	specs := cfg.EnvSpecs()

	var md strings.Builder
	md.WriteString("# BitPay client configuration\n\n")
	md.WriteString("Generated from `config.EnvSpecs()`. **Do not edit manually.**\n\n")
	md.WriteString("`config.LoadConfig()` reads these variables from the environment, " +
		"after loading an optional `.env` file from the working directory.\n\n")
	md.WriteString("| Variable | Required | Default | Type | Description |\n")
	md.WriteString("|----------|----------|---------|------|-------------|\n")

	for _, s := range specs {
		def := "`" + s.Default + "`"
		if s.Default == "" {
			def = "—"
		}
		required := "no"
		if s.Required {
			required = "**yes**"
		}
		desc := s.Description
		if s.Notes != "" {
			desc += "<br/><em>" + s.Notes + "</em>"
		}
		fmt.Fprintf(&md, "| `%s` | %s | %s | `%s` | %s |\n", s.FullName, required, def, s.Type, desc)
	}

	md.WriteString("\n## Example `.env`\n\n```sh\n")
	for _, s := range specs {
		if s.Example == "" {
			continue
		}
		if !s.Required {
			md.WriteString("# ")
		}
		fmt.Fprintf(&md, "%s=%s\n", s.FullName, s.Example)
	}
	md.WriteString("```\n")

	if err := os.MkdirAll("../../docs", 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile("../../docs/environment.md", []byte(md.String()), 0o644); err != nil {
		panic(err)
	}
}
