package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"strings"
)

// SerializationChecksum is a deterministic digest of a snapshot.
type SerializationChecksum struct {
	Hash      string // SHA-256 of the canonical representation
	Timestamp string // when the snapshot was taken
	Version   int
}

// ComputeChecksum hashes the canonical representation of the snapshot.
// The match id and timestamp are excluded so that matches replayed from
// the same seed hash identically.
func (snapshot *Snapshot) ComputeChecksum() (*SerializationChecksum, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(snapshot.buildDeterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: snapshot.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}

func (snapshot *Snapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("ROUND:%d\n", snapshot.Round))

	// Pieces are recorded in arena order, which is fixed.
	for _, p := range snapshot.Pieces {
		buf.WriteString(fmt.Sprintf("PIECE:%s|%s|%s|%t|%t|%d|%d|%s\n",
			p.Name,
			p.Color,
			p.Position,
			p.Clockwise,
			p.BlockClockwise,
			p.Captures,
			p.ApproachPasses,
			p.Effect,
		))
	}

	buf.WriteString(fmt.Sprintf("MYSTERY:%d|%d\n", snapshot.MysteryCell, snapshot.MysteryRoundsLeft))
	history := make([]string, len(snapshot.MysteryHistory))
	for i, cell := range snapshot.MysteryHistory {
		history[i] = fmt.Sprint(cell)
	}
	buf.WriteString("MYSTERY_HISTORY:")
	buf.WriteString(strings.Join(history, ","))
	buf.WriteString("\n")

	buf.WriteString("ORDER:")
	buf.WriteString(strings.Join(snapshot.Order, ","))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("PHASE:%s\n", snapshot.Phase))

	// Finishing order matters
	buf.WriteString("FINISHED:")
	buf.WriteString(strings.Join(snapshot.Finished, ","))
	buf.WriteString("\n")

	return buf.String()
}

// VerifyChecksum reports whether the snapshot still hashes to expected.
func (snapshot *Snapshot) VerifyChecksum(expected *SerializationChecksum) (bool, error) {
	computed, err := snapshot.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}

	return computed.Hash == expected.Hash, nil
}

// SerializeToBytes gob-encodes the snapshot.
func (snapshot *Snapshot) SerializeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(snapshot); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// DeserializeSnapshot decodes a snapshot produced by SerializeToBytes.
func DeserializeSnapshot(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	decoder := gob.NewDecoder(bytes.NewBuffer(data))

	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snapshot, nil
}

// ValidateSerializationRoundtrip checks that a snapshot survives encoding
// by comparing checksums before and after.
func ValidateSerializationRoundtrip(snapshot *Snapshot) error {
	originalChecksum, err := snapshot.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("failed to compute original checksum: %w", err)
	}

	data, err := snapshot.SerializeToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}

	deserialized, err := DeserializeSnapshot(data)
	if err != nil {
		return fmt.Errorf("failed to deserialize: %w", err)
	}

	ok, err := deserialized.VerifyChecksum(originalChecksum)
	if err != nil {
		return fmt.Errorf("failed to verify deserialized checksum: %w", err)
	}
	if !ok {
		return fmt.Errorf("checksum mismatch after roundtrip of round %d: original=%s",
			snapshot.Round, originalChecksum.Hash)
	}

	return nil
}
