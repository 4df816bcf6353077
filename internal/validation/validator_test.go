// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package validation

import (
	"strings"
	"testing"
)

type suggestParams struct {
	Query string `validate:"required,min=1,max=100"`
	Kind  string `validate:"required,entitykind"`
	Limit int    `validate:"min=1,max=50"`
}

func TestValidateStructPasses(t *testing.T) {
	p := suggestParams{Query: "jam", Kind: "cuisine", Limit: 10}
	if err := ValidateStruct(&p); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructMissingQuery(t *testing.T) {
	p := suggestParams{Kind: "cuisine", Limit: 10}
	err := ValidateStruct(&p)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Query") {
		t.Errorf("Message = %q, want mention of Query", apiErr.Message)
	}
}

func TestValidateStructEntityKind(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"chef", false},
		{"dish", false},
		{"cuisine", false},
		{"ingredient", false},
		{"restaurant", false},
		{"CUISINE", false}, // parsing is case-insensitive
		{"movie", true},
		{"", true},
	}
	for _, tt := range tests {
		p := suggestParams{Query: "x", Kind: tt.kind, Limit: 1}
		err := ValidateStruct(&p)
		if (err != nil) != tt.wantErr {
			t.Errorf("kind %q: error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	p := suggestParams{Query: "", Kind: "movie", Limit: 0}
	err := ValidateStruct(&p)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(err.Errors()) < 2 {
		t.Errorf("Errors() = %d entries, want >= 2", len(err.Errors()))
	}
	apiErr := err.ToAPIError()
	if apiErr.Details["fields"] == nil {
		t.Error("multi-error Details missing fields list")
	}
}
