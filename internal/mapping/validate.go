package mapping

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"dashboard-converter/internal/common"
	"dashboard-converter/internal/diagnostic"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a mapping file. Struct constraints come first; cross-key
// checks run only when those pass.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeConfigMissing, "mapping file is nil", "", "")
		return res
	}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			res.AddError(diagnostic.CodeConfigInvalid, err.Error(), "", "")
			return res
		}

		for _, fe := range verrs {
			res.AddError(diagnostic.CodeConfigInvalid, describe(fe), "", fe.Namespace())
		}

		return res
	}

	validateSource(res, f)
	validateCollectors(res, f)
	validateFolders(res, &f.Options)

	return res
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed %q rule (%s)", fe.Tag(), fe.Param())
	}

	return fmt.Sprintf("failed %q rule", fe.Tag())
}

func validateSource(res *diagnostic.Diagnostics, f *File) {
	if _, ok := f.Cclear.Text[f.Options.NameKey]; !ok {
		res.AddError(diagnostic.CodeConfigInvalid,
			fmt.Sprintf("source text has no %q entry", f.Options.NameKey), "", "File.Cclear.Text")
	}

	if _, ok := f.Cclear.Datasources[f.Options.VariablesDatasource]; !ok {
		res.AddError(diagnostic.CodeConfigInvalid,
			fmt.Sprintf("variables datasource %q is not a source datasource key", f.Options.VariablesDatasource),
			"", "File.Options.VariablesDatasource")
	}
}

func validateCollectors(res *diagnostic.Diagnostics, f *File) {
	seen := make(map[string]struct{}, len(f.Collectors))

	for i := range f.Collectors {
		c := &f.Collectors[i]
		path := fmt.Sprintf("File.Collectors[%d]", i)

		if _, dup := seen[c.Key]; dup {
			res.AddError(diagnostic.CodeConfigInvalid, fmt.Sprintf("duplicate collector %q", c.Key), "", path+".Key")
		}

		seen[c.Key] = struct{}{}

		if c.Key == f.Options.GlobalKey {
			res.AddError(diagnostic.CodeConfigInvalid,
				fmt.Sprintf("collector key %q collides with the global key", c.Key), "", path+".Key")
		}

		for _, k := range common.SortedKeys(f.Cclear.Text) {
			if v, ok := c.Text[k]; !ok || v == "" {
				res.AddError(diagnostic.CodeConfigInvalid,
					fmt.Sprintf("collector %q has no text for %q", c.Key, k), "", path+".Text")
			}
		}

		for _, k := range common.SortedKeys(f.Cclear.Datasources) {
			if _, ok := c.Datasources[k]; !ok {
				res.AddError(diagnostic.CodeConfigInvalid,
					fmt.Sprintf("collector %q has no datasource entry for %q", c.Key, k), "", path+".Datasources")
			}
		}

		for _, k := range common.SortedKeys(c.Datasources) {
			if _, ok := f.Cclear.Datasources[k]; !ok {
				res.AddWarning(diagnostic.CodeConfigInvalid,
					fmt.Sprintf("collector %q maps unknown datasource key %q", c.Key, k), "", path+".Datasources")
			}
		}
	}
}

func validateFolders(res *diagnostic.Diagnostics, o *Options) {
	merged := make(map[string]struct{}, len(o.MergedFolders))
	for _, name := range o.MergedFolders {
		merged[name] = struct{}{}
	}

	for _, name := range o.SeparateFolders {
		if _, ok := merged[name]; ok {
			res.AddError(diagnostic.CodeConfigInvalid,
				fmt.Sprintf("folder %q is both merged and separate", name), "", "File.Options.SeparateFolders")
		}
	}
}
