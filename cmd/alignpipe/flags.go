package main

import (
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sznuper/alignpipe/internal/config"
)

// flagRenames keeps the historical names for a few yaml keys.
var flagRenames = map[string]string{
	"report": "stats",
}

var flagShorthands = map[string]string{
	"reference":  "f",
	"output_dir": "o",
	"threads":    "t",
}

// overlaySections returns the config sections that get one flag per field.
func overlaySections(cfg *config.Config) []any {
	return []any{&cfg.Pipeline, &cfg.Tools, &cfg.Budget}
}

func flagName(yamlTag string) string {
	if renamed, ok := flagRenames[yamlTag]; ok {
		return renamed
	}
	return strings.ReplaceAll(yamlTag, "_", "-")
}

// registerOptionFlags adds a --flag for every field of the overlay sections,
// deriving the flag name from the yaml struct tag (snake_case → kebab-case).
func registerOptionFlags(cmd *cobra.Command) {
	for _, section := range overlaySections(config.Default()) {
		t := reflect.TypeOf(section).Elem()
		for i := range t.NumField() {
			yamlTag := t.Field(i).Tag.Get("yaml")
			name, short := flagName(yamlTag), flagShorthands[yamlTag]
			usage := "override " + yamlTag

			switch t.Field(i).Type.Kind() {
			case reflect.String:
				cmd.Flags().StringP(name, short, "", usage)
			case reflect.Int:
				cmd.Flags().IntP(name, short, 0, usage)
			case reflect.Bool:
				cmd.Flags().BoolP(name, short, false, usage)
			case reflect.Float64:
				cmd.Flags().Float64P(name, short, 0, usage)
			}
		}
	}
}

// applyOptionFlags overlays CLI flag values onto the config. Only flags
// explicitly set by the user are applied.
func applyOptionFlags(cmd *cobra.Command, cfg *config.Config) {
	for _, section := range overlaySections(cfg) {
		v := reflect.ValueOf(section).Elem()
		t := v.Type()
		for i := range t.NumField() {
			name := flagName(t.Field(i).Tag.Get("yaml"))
			if !cmd.Flags().Changed(name) {
				continue
			}

			field := v.Field(i)
			switch field.Kind() {
			case reflect.String:
				val, _ := cmd.Flags().GetString(name)
				field.SetString(val)
			case reflect.Int:
				val, _ := cmd.Flags().GetInt(name)
				field.SetInt(int64(val))
			case reflect.Bool:
				val, _ := cmd.Flags().GetBool(name)
				field.SetBool(val)
			case reflect.Float64:
				val, _ := cmd.Flags().GetFloat64(name)
				field.SetFloat(val)
			}
		}
	}
}
