package checksum

import "testing"

func TestSum(t *testing.T) {
	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := Sum([]byte("hello")); got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestEqual(t *testing.T) {
	if !Equal([]byte("same"), []byte("same")) {
		t.Error("identical content reported unequal")
	}
	if Equal([]byte("one"), []byte("two")) {
		t.Error("different content reported equal")
	}
	if !Equal(nil, []byte{}) {
		t.Error("nil and empty should hash identically")
	}
}
