package knownbits

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Problem is one factorization task read from a problem file.
type Problem struct {
	N     *big.Int
	PBits BitPattern
	QBits BitPattern
}

// ProblemParser defines the interface for reading problems from a source.
type ProblemParser interface {
	// ParseProblems reads all problems from the source and returns them.
	ParseProblems(source string) ([]*Problem, error)
}

// JSONParser reads problems from JSON files.
type JSONParser struct {
	NField string // Field name for the modulus (default: "n")
	PField string // Field name for the p pattern (default: "p_bits")
	QField string // Field name for the q pattern (default: "q_bits")
}

// ParseProblems parses problems from a JSON file.
//
// Expected format:
//
//	[
//	  {"n": "91", "p_bits": "110_", "q_bits": "011_"},
//	  {"n": "0x1234...", "p_bits": "10?1", "q_bits": "_01_"}
//	]
func (p *JSONParser) ParseProblems(jsonFile string) ([]*Problem, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large moduli as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	nField := p.NField
	if nField == "" {
		nField = "n"
	}
	pField := p.PField
	if pField == "" {
		pField = "p_bits"
	}
	qField := p.QField
	if qField == "" {
		qField = "q_bits"
	}

	problems := make([]*Problem, 0, len(items))
	for _, item := range items {
		nVal, ok := item[nField]
		if !ok {
			return nil, fmt.Errorf("missing %s field", nField)
		}
		n, err := parseBigInt(nVal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", nField, err)
		}

		pVal, ok := item[pField].(string)
		if !ok {
			return nil, fmt.Errorf("missing or non-string %s field", pField)
		}
		qVal, ok := item[qField].(string)
		if !ok {
			return nil, fmt.Errorf("missing or non-string %s field", qField)
		}

		problems = append(problems, &Problem{
			N:     n,
			PBits: ParseBitString(pVal),
			QBits: ParseBitString(qVal),
		})
	}

	return problems, nil
}

// CSVParser reads problems from CSV files with a header row.
type CSVParser struct {
	NCol string // Column name for the modulus (default: "n")
	PCol string // Column name for the p pattern (default: "p_bits")
	QCol string // Column name for the q pattern (default: "q_bits")
}

// ParseProblems parses problems from a CSV file.
func (p *CSVParser) ParseProblems(csvFile string) ([]*Problem, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nCol := p.NCol
	if nCol == "" {
		nCol = "n"
	}
	pCol := p.PCol
	if pCol == "" {
		pCol = "p_bits"
	}
	qCol := p.QCol
	if qCol == "" {
		qCol = "q_bits"
	}

	nIdx, pIdx, qIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case nCol:
			nIdx = i
		case pCol:
			pIdx = i
		case qCol:
			qIdx = i
		}
	}
	if nIdx == -1 || pIdx == -1 || qIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s, %s or %s", nCol, pCol, qCol)
	}

	problems := make([]*Problem, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if nIdx >= len(record) || pIdx >= len(record) || qIdx >= len(record) {
			return nil, fmt.Errorf("record has too few columns")
		}

		n, err := parseBigInt(record[nIdx])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", nCol, err)
		}

		problems = append(problems, &Problem{
			N:     n,
			PBits: ParseBitString(record[pIdx]),
			QBits: ParseBitString(record[qIdx]),
		})
	}

	return problems, nil
}

// YAMLParser reads problems from YAML files.
type YAMLParser struct{}

// yamlProblem is the on-disk YAML shape of one problem.
type yamlProblem struct {
	N     string `yaml:"n"`
	PBits string `yaml:"p_bits"`
	QBits string `yaml:"q_bits"`
}

// ParseProblems parses problems from a YAML file.
//
// Expected format:
//
//	- n: "91"
//	  p_bits: "110_"
//	  q_bits: "011_"
func (p *YAMLParser) ParseProblems(yamlFile string) ([]*Problem, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var items []yamlProblem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	problems := make([]*Problem, 0, len(items))
	for _, item := range items {
		if item.N == "" {
			return nil, fmt.Errorf("missing n field")
		}
		n, err := parseBigInt(item.N)
		if err != nil {
			return nil, fmt.Errorf("failed to parse n: %w", err)
		}

		problems = append(problems, &Problem{
			N:     n,
			PBits: ParseBitString(item.PBits),
			QBits: ParseBitString(item.QBits),
		})
	}

	return problems, nil
}

// parseBigInt parses a big integer from various formats (decimal string,
// 0x-prefixed hex string, number).
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		}
		z := new(big.Int)
		if _, ok := z.SetString(s, base); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		z := new(big.Int)
		if _, ok := z.SetString(string(v), 10); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		s := fmt.Sprintf("%.0f", v)
		z := new(big.Int)
		if _, ok := z.SetString(s, 10); !ok {
			return nil, fmt.Errorf("invalid number format: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}
