package core

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestNumber_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{-0.5, "-0.5"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
		{math.Inf(-1), "null"},
	}
	for _, tt := range tests {
		got, err := json.Marshal(Number(tt.in))
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAnalysis_MarshalJSON(t *testing.T) {
	svc := NewService(Options{}, nil)
	a, err := svc.Analyze(context.Background(), "x,y\n1,NaN\n2,4\n")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got struct {
		ID      string       `json:"id"`
		Columns []string     `json:"columns"`
		Rows    [][]*float64 `json:"rows"`
		Matrix  [][]*float64 `json:"matrix"`
		Pairs   []struct {
			Left        string   `json:"left"`
			Coefficient *float64 `json:"coefficient"`
		} `json:"pairs"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, data)
	}

	if got.ID != a.ID.String() {
		t.Errorf("id = %q, want %q", got.ID, a.ID)
	}
	if strings.Join(got.Columns, ",") != "x,y" {
		t.Errorf("columns = %v", got.Columns)
	}
	if got.Rows[0][1] != nil {
		t.Errorf("NaN cell encoded as %v, want null", *got.Rows[0][1])
	}
	if got.Matrix[0][0] != nil {
		t.Errorf("NaN coefficient encoded as %v, want null", *got.Matrix[0][0])
	}
	if len(got.Pairs) != 1 || got.Pairs[0].Left != "x" {
		t.Errorf("pairs = %+v", got.Pairs)
	}
}

func TestSimilarity_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Similarity{Pearson: 0, Cosine: math.NaN()})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"pearson":0,"cosine":null}` {
		t.Errorf("Marshal() = %s", data)
	}
}
