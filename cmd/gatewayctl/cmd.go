// Package main implements gatewayctl, a thin CLI harness for exercising
// the SCIM/LDAP mapping and filter-compilation core end to end: load a
// mapping configuration document and print a compiled LDAP filter or
// sort key. It is explicitly not the production HTTP surface (out of
// scope per spec.md §1) — grounded on
// github.com/imulab/go-scim's cmd/api/cmd.go + cmd/internal/args wiring
// shape (§SPEC_FULL "Configuration & CLI").
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/UnboundID/scim/cmd/internal/args"
	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapfilter"
)

func main() {
	app := &cli.App{
		Name:  "gatewayctl",
		Usage: "inspect the SCIM<->LDAP mapping and filter-compilation core",
		Commands: []*cli.Command{
			compileFilterCommand(),
			sortKeyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compileFilterCommand() *cli.Command {
	logging := new(args.Logging)
	mappingArgs := new(args.Mapping)
	var resourceName string

	flags := append([]cli.Flag{}, logging.Flags()...)
	flags = append(flags, mappingArgs.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "resource",
		Usage:       "SCIM resource type name declared in the mapping configuration (e.g. User)",
		Required:    true,
		Destination: &resourceName,
	})

	return &cli.Command{
		Name:      "compile-filter",
		Usage:     "compile a SCIM filter string into its RFC 4515 LDAP filter form",
		ArgsUsage: "<scim-filter>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			logger := logging.Logger()

			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one SCIM filter argument")
			}
			filter := c.Args().Get(0)

			rm, err := mappingArgs.ResourceMapping(resourceName)
			if err != nil {
				return err
			}

			node, err := filterql.Parse(filter)
			if err != nil {
				return err
			}
			logger.Debug().Str("scimFilter", filter).Msg("parsed SCIM filter")

			compiled := ldapfilter.Compile(rm, node)
			logger.Debug().Str("ldapFilter", compiled).Msg("compiled LDAP filter")

			fmt.Println(compiled)
			return nil
		},
	}
}

func sortKeyCommand() *cli.Command {
	logging := new(args.Logging)
	mappingArgs := new(args.Mapping)
	var resourceName string

	flags := append([]cli.Flag{}, logging.Flags()...)
	flags = append(flags, mappingArgs.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "resource",
		Usage:       "SCIM resource type name declared in the mapping configuration (e.g. User)",
		Required:    true,
		Destination: &resourceName,
	})

	return &cli.Command{
		Name:      "sort-key",
		Usage:     "resolve the LDAP attribute that backs a SCIM attribute's sort order",
		ArgsUsage: "<scim-attribute-name>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			logger := logging.Logger()

			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one SCIM attribute name argument")
			}
			attrName := c.Args().Get(0)

			rm, err := mappingArgs.ResourceMapping(resourceName)
			if err != nil {
				return err
			}

			ldapAttr, err := ldapfilter.CompileSortKey(rm, attrName)
			if err != nil {
				logger.Warn().Err(err).Str("attribute", attrName).Msg("cannot resolve sort key")
				return err
			}

			fmt.Println(ldapAttr)
			return nil
		},
	}
}
