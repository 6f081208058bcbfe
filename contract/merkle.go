package contract

import (
	"bytes"
	"crypto/sha256"
)

// Merkle answer verification. A leaf commits one answer as
// sha256(display_order ∥ answer ∥ salt); pairs hash in canonical byte
// order so proofs need no left/right direction flags.

// LeafHash builds the commitment for a single answer.
func LeafHash(displayOrder uint8, answer, salt string) [32]byte {
	h := sha256.New()
	h.Write([]byte{displayOrder})
	h.Write([]byte(answer))
	h.Write([]byte(salt))
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// VerifyProof folds the proof's sibling hashes from leaf toward root and
// compares the result. Pure and deterministic.
func VerifyProof(leaf [32]byte, proof [][32]byte, root [32]byte) bool {
	current := leaf
	for _, sibling := range proof {
		current = hashPair(current, sibling)
	}
	return current == root
}

// VerifyAnswer is the one-shot form used by submit: hash the answer, walk
// the proof.
func VerifyAnswer(displayOrder uint8, answer, salt string, proof [][32]byte, root [32]byte) bool {
	return VerifyProof(LeafHash(displayOrder, answer, salt), proof, root)
}

func hashPair(first, second [32]byte) [32]byte {
	h := sha256.New()
	if bytes.Compare(first[:], second[:]) <= 0 {
		h.Write(first[:])
		h.Write(second[:])
	} else {
		h.Write(second[:])
		h.Write(first[:])
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
