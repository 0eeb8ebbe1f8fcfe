// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses driver configuration files, translates the HCL
// schema into the format-agnostic config.Config, and can write a default
// configuration back out with hclwrite.
package hcl
