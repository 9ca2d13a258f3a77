package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"timestamp":  time.Now().Unix(),
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})

	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}

	return result
}

// nestedLeafPath returns the dotted path to the count of the first leaf
func nestedLeafPath(depth int) string {
	path := ""
	for d := depth; d > 0; d-- {
		path += fmt.Sprintf("nested_%d_0.", d)
	}
	return path + "count"
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			// Nested object
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}

	return result
}

func writeJSON(b *testing.B, path string, v any) {
	b.Helper()
	jsonData, err := json.MarshalIndent(v, "", "  ")
	require.NoError(b, err)
	require.NoError(b, os.WriteFile(path, jsonData, 0644))
}

func benchCLI(b *testing.B, args ...string) {
	b.Helper()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
		output, err := cmd.CombinedOutput()
		require.NoError(b, err, "CLI command failed: %s", string(output))
	}
}

// BenchmarkDeepNesting benchmarks extraction and description of deeply nested documents
func BenchmarkDeepNesting(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, depth := range depths {
		jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", depth.name))
		writeJSON(b, jsonFile, generateNestedJSON(depth.depth, depth.width))

		b.Run(depth.name+"/Get", func(b *testing.B) {
			benchCLI(b, "-i", jsonFile, "get", nestedLeafPath(depth.depth), "--as", "int", "-F")
		})
		b.Run(depth.name+"/Describe", func(b *testing.B) {
			benchCLI(b, "-i", jsonFile, "describe")
		})
	}
}

// BenchmarkWideStructures benchmarks performance with wide documents (many fields)
func BenchmarkWideStructures(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	widths := []struct {
		name       string
		fieldCount int
	}{
		{"Fields10", 10},     // Small structure
		{"Fields100", 100},   // Large structure
		{"Fields1000", 1000}, // Extreme case
	}

	for _, width := range widths {
		jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", width.name))
		writeJSON(b, jsonFile, generateWideJSON(width.fieldCount))

		// One path of each kind, extracted concurrently.
		paths := []string{"string_field_0", "int_field_1", "bool_field_2", "float_field_3", "object_field_4.name"}

		b.Run(width.name+"/Get", func(b *testing.B) {
			benchCLI(b, append([]string{"-i", jsonFile, "get", "--concurrency", "4"}, paths...)...)
		})
		b.Run(width.name+"/Describe", func(b *testing.B) {
			benchCLI(b, "-i", jsonFile, "describe")
		})
	}
}

// BenchmarkArrayProcessing benchmarks element-wise conversion of large arrays
func BenchmarkArrayProcessing(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		arraySize int
	}{
		{"Array100", 100},
		{"Array1000", 1000},
		{"Array5000", 5000},
	}

	for _, size := range sizes {
		values := make([]interface{}, size.arraySize)
		for i := 0; i < size.arraySize; i++ {
			// Every tenth value is text that will not convert.
			if i%10 == 9 {
				values[i] = "n/a"
				continue
			}
			values[i] = fmt.Sprintf("%.2f", rand.Float64()*100)
		}

		jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
		writeJSON(b, jsonFile, map[string]interface{}{"values": values})

		b.Run(size.name, func(b *testing.B) {
			benchCLI(b, "-i", jsonFile, "get", "values", "--as", "decimal", "--each", "--marker", "?")
		})
	}
}

// BenchmarkLargeJSON benchmarks the application with large documents
func BenchmarkLargeJSON(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
		{"10000Items", 10000},
	}

	for _, size := range sizes {
		jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
		generateLargeJSON(b, jsonFile, size.itemCount)

		b.Run(size.name, func(b *testing.B) {
			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s_output.yaml", size.name))
			benchCLI(b, "-i", jsonFile, "-o", outputFile, "--output-format", "yaml", "describe")

			_, err := os.Stat(outputFile)
			require.NoError(b, err, "Output file was not created")
		})
	}
}
