package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secreto123" {
		t.Fatal("password stored in clear")
	}

	if !CheckPassword("secreto123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("otro", hash) {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}
