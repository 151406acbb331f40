package main

import (
	"fmt"
	"time"

	"github.com/0xalexb/hjarta-inject/convert"
	"github.com/0xalexb/hjarta-inject/producer"
	"github.com/0xalexb/hjarta-inject/shape"
	"github.com/0xalexb/hjarta-inject/site"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newGetCommand(flags *globalFlags) *cobra.Command {
	var (
		typeText    string
		defaultText string
	)

	cmd := &cobra.Command{
		Use:   "get NAME KEY",
		Short: "Resolve one key of a document into a typed value",
		Long: `Resolve KEY of the named document as the type given by --type, e.g.
"int", "list<string>", "map<string,long>", "optional<double>" or "time.Duration".
When the key is absent, --default is parsed and converted instead. The result is
printed as YAML.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // NAME and KEY
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := shape.Parse(typeText)
			if err != nil {
				return fmt.Errorf("--type: %w", err)
			}

			store, logger, err := flags.store(cmd)
			if err != nil {
				return err
			}

			qualifier := site.NewQualifier(args[0]).WithProperty(args[1])
			if cmd.Flags().Changed("default") {
				qualifier = qualifier.WithDefault(defaultText)
			}

			p := producer.New(store, convert.New(convert.WithLogger(logger)), producer.WithLogger(logger))

			value, err := p.Resolve(site.Site{Qualifier: qualifier, Declaring: "", Member: "", Type: desc})
			if err != nil {
				return err //nolint:wrapcheck // already names document and key
			}

			if r, isChar := value.(rune); isChar && desc.IsScalar(shape.Char) {
				value = string(r)
			}

			plain, err := render(value)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(plain)
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err //nolint:wrapcheck // write error to the terminal
		},
	}

	cmd.Flags().StringVarP(&typeText, "type", "t", "string", "requested type shape")
	cmd.Flags().StringVar(&defaultText, "default", "", "default text used when the key is absent")

	return cmd
}

// render turns engine values into plain values YAML can encode.
func render(value any) (any, error) {
	switch typed := value.(type) {
	case convert.Optional:
		inner, ok := typed.Get()
		if !ok {
			return nil, nil //nolint:nilnil // absent renders as null
		}

		return render(inner)
	case convert.OptionalInt:
		return optionalValue(typed.Get())
	case convert.OptionalLong:
		return optionalValue(typed.Get())
	case convert.OptionalDouble:
		return optionalValue(typed.Get())
	case *convert.Set:
		return render(typed.Values())
	case convert.Supplier:
		inner, err := typed()
		if err != nil {
			return nil, err
		}

		return render(inner)
	case time.Duration:
		return typed.String(), nil
	case []any:
		items := make([]any, 0, len(typed))

		for _, item := range typed {
			plain, err := render(item)
			if err != nil {
				return nil, err
			}

			items = append(items, plain)
		}

		return items, nil
	case map[string]any:
		fields := make(map[string]any, len(typed))

		for key, item := range typed {
			plain, err := render(item)
			if err != nil {
				return nil, err
			}

			fields[key] = plain
		}

		return fields, nil
	default:
		return value, nil
	}
}

func optionalValue(value any, present bool) (any, error) {
	if !present {
		return nil, nil //nolint:nilnil // absent renders as null
	}

	return value, nil
}
