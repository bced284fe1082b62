package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"liquidityMinter/internal/model"
)

func TestJsonlStorageAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "positions.jsonl")
	sink := NewJsonlStorage(path)

	first := model.PositionRecord{ChainID: 1, TxHash: "0xaaa", TokenID: "1"}
	second := model.PositionRecord{ChainID: 1, TxHash: "0xbbb", TokenID: "2"}

	if err := sink.PutPositionBatch([]model.PositionRecord{first}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := sink.PutPositionBatch(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if err := sink.PutPositionBatch([]model.PositionRecord{second}); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var records []model.PositionRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record model.PositionRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("parse line: %v", err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("record count mismatch: %d", len(records))
	}
	if records[0].TxHash != "0xaaa" || records[1].TxHash != "0xbbb" {
		t.Fatalf("records out of order: %+v", records)
	}
}
