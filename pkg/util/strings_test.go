package util

import "testing"

func TestRemoveDuplicateStrings(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"10H", "222", "10H", "", "113M"}, []string{})

	expected := []string{"10H", "222", "113M"}
	if len(result) != len(expected) {
		t.Fatalf("Expected %d strings, got %d: %v", len(expected), len(result), result)
	}
	for i, value := range expected {
		if result[i] != value {
			t.Errorf("Position %d: expected %q, got %q", i, value, result[i])
		}
	}
}

func TestRemoveDuplicateStringsIgnoreList(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"10H", "222"}, []string{"222"})

	if len(result) != 1 || result[0] != "10H" {
		t.Errorf("Expected ignore list entries to be dropped, got %v", result)
	}
}

func TestContainsString(t *testing.T) {
	values := []string{"city", "express"}

	if !ContainsString(values, "city") {
		t.Error("Expected city to be found")
	}
	if ContainsString(values, "both") {
		t.Error("Expected both to be absent")
	}
}
