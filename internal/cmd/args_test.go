package cmd

import "testing"

func TestValidateRedactArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      RedactArgs
		expectErr bool
	}{
		{"single file", RedactArgs{RulesFile: "r.json", InputFile: "a.docx"}, false},
		{"batch mode", RedactArgs{RulesFile: "r.json", InputDir: "in"}, false},
		{"missing rules", RedactArgs{InputFile: "a.docx"}, true},
		{"no input at all", RedactArgs{RulesFile: "r.json"}, true},
		{"mixed modes", RedactArgs{RulesFile: "r.json", InputFile: "a.docx", InputDir: "in"}, true},
		{"output without input", RedactArgs{RulesFile: "r.json", OutputFile: "b.docx"}, true},
		{"output dir without input dir", RedactArgs{RulesFile: "r.json", OutputDir: "out"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRedactArgs(&tt.args)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateRedactArgs() error = %v, expectErr %v", err, tt.expectErr)
			}
		})
	}
}

func TestValidateRedactArgs_Defaults(t *testing.T) {
	args := RedactArgs{RulesFile: "r.json", InputFile: "合同.docx"}
	if err := ValidateRedactArgs(&args); err != nil {
		t.Fatalf("ValidateRedactArgs() failed: %v", err)
	}
	if args.OutputFile != "合同_脱敏.docx" {
		t.Errorf("default output = %q", args.OutputFile)
	}

	batch := RedactArgs{RulesFile: "r.json", InputDir: "contracts"}
	if err := ValidateRedactArgs(&batch); err != nil {
		t.Fatalf("ValidateRedactArgs() failed: %v", err)
	}
	if batch.OutputDir != "contracts_脱敏" {
		t.Errorf("default output dir = %q", batch.OutputDir)
	}
}

func TestValidateRestoreArgs(t *testing.T) {
	args := RestoreArgs{MappingFile: "m.md", InputFile: "合同_脱敏.docx"}
	if err := ValidateRestoreArgs(&args); err != nil {
		t.Fatalf("ValidateRestoreArgs() failed: %v", err)
	}
	if args.OutputFile != "合同_脱敏_还原.docx" {
		t.Errorf("default output = %q", args.OutputFile)
	}

	if err := ValidateRestoreArgs(&RestoreArgs{InputFile: "a.docx"}); err == nil {
		t.Error("expected error for missing mapping file")
	}
	if err := ValidateRestoreArgs(&RestoreArgs{MappingFile: "m.md"}); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		suffix   string
		expected string
	}{
		{"docx extension", "contract.docx", "脱敏", "contract_脱敏.docx"},
		{"with directory", "docs/contract.docx", "还原", "docs/contract_还原.docx"},
		{"no extension", "contract", "脱敏", "contract_脱敏.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateOutputFileName(tt.input, tt.suffix); got != tt.expected {
				t.Errorf("GenerateOutputFileName() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
