package core

import "testing"

func TestSaltedMerkleTreeCommitOpenVerify(t *testing.T) {
	data := [][]byte{
		[]byte("alpha"),
		[]byte("bravo"),
		[]byte("charlie"),
		[]byte("delta"),
		[]byte("echo"),
	}
	tree, err := NewSaltedMerkleTree(data)
	if err != nil {
		t.Fatalf("NewSaltedMerkleTree: %v", err)
	}
	root := tree.Root()

	for i, leaf := range data {
		auth, err := tree.Open(i)
		if err != nil {
			t.Fatalf("Open(%d): %v", i, err)
		}
		if !VerifySaltedPath(root, i, leaf, auth) {
			t.Fatalf("leaf %d: valid path failed to verify", i)
		}
	}
}

func TestSaltedMerkleTreeRejectsTamperedLeaf(t *testing.T) {
	data := [][]byte{[]byte("alpha"), []byte("bravo"), []byte("charlie"), []byte("delta")}
	tree, err := NewSaltedMerkleTree(data)
	if err != nil {
		t.Fatalf("NewSaltedMerkleTree: %v", err)
	}
	auth, err := tree.Open(1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if VerifySaltedPath(tree.Root(), 1, []byte("tampered"), auth) {
		t.Fatalf("tampered leaf verified")
	}
}

func TestSaltedMerkleTreeRejectsTamperedPath(t *testing.T) {
	data := [][]byte{[]byte("alpha"), []byte("bravo"), []byte("charlie"), []byte("delta")}
	tree, err := NewSaltedMerkleTree(data)
	if err != nil {
		t.Fatalf("NewSaltedMerkleTree: %v", err)
	}
	auth, err := tree.Open(2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(auth.Path) == 0 {
		t.Fatalf("expected a non-empty auth path")
	}
	corrupted := make([][]byte, len(auth.Path))
	copy(corrupted, auth.Path)
	bad := make([]byte, len(corrupted[0]))
	copy(bad, corrupted[0])
	bad[0] ^= 0xFF
	corrupted[0] = bad
	tampered := &AuthPath{Salt: auth.Salt, Path: corrupted}
	if VerifySaltedPath(tree.Root(), 2, data[2], tampered) {
		t.Fatalf("tampered auth path verified")
	}
}

func TestSaltedMerkleTreeRejectsWrongIndex(t *testing.T) {
	data := [][]byte{[]byte("alpha"), []byte("bravo"), []byte("charlie"), []byte("delta")}
	tree, err := NewSaltedMerkleTree(data)
	if err != nil {
		t.Fatalf("NewSaltedMerkleTree: %v", err)
	}
	auth, err := tree.Open(0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if VerifySaltedPath(tree.Root(), 1, data[0], auth) {
		t.Fatalf("leaf verified at wrong index")
	}
}
