package parjpeg

import (
	"fmt"

	"github.com/cocosip/go-jpeg-parallel/jpeg/common"
)

// ComponentType selects which pair of code tables a component uses.
type ComponentType int

const (
	// Luminance component type (Y)
	Luminance ComponentType = iota
	// Chrominance component type (Cb, Cr)
	Chrominance

	componentTypeCount
)

// TableType distinguishes DC from AC code tables.
type TableType int

const (
	// TableDC selects the DC coefficient table
	TableDC TableType = iota
	// TableAC selects the AC coefficient table
	TableAC

	tableTypeCount
)

// TableKey identifies one table in the closed component/table enumeration.
type TableKey struct {
	Component ComponentType
	Table     TableType
}

// CodeTableSet maps the closed (component type, table type) enumeration to
// Huffman code tables. The mapping is validated exhaustively at
// construction, so every lookup during encoding is guaranteed to hit.
// The set is immutable and shared read-only by all segments.
type CodeTableSet struct {
	tables map[TableKey]*common.HuffmanTable
	codes  map[TableKey][]common.HuffmanCode
}

// NewCodeTableSet builds a table set from per-key canonical tables.
// All four component/table combinations must be present.
func NewCodeTableSet(tables map[TableKey]*common.HuffmanTable) (*CodeTableSet, error) {
	s := &CodeTableSet{
		tables: make(map[TableKey]*common.HuffmanTable, len(tables)),
		codes:  make(map[TableKey][]common.HuffmanCode, len(tables)),
	}

	for ct := ComponentType(0); ct < componentTypeCount; ct++ {
		for tt := TableType(0); tt < tableTypeCount; tt++ {
			key := TableKey{Component: ct, Table: tt}
			table, ok := tables[key]
			if !ok || table == nil {
				return nil, fmt.Errorf("%w: component type %d, table type %d",
					ErrMissingCodeTable, ct, tt)
			}
			s.tables[key] = table
			s.codes[key] = table.DeriveCodes()
		}
	}

	return s, nil
}

// StandardCodeTables returns the standard baseline JPEG table set.
func StandardCodeTables() *CodeTableSet {
	s, err := NewCodeTableSet(map[TableKey]*common.HuffmanTable{
		{Luminance, TableDC}:   common.NewHuffmanTable(common.StandardDCLuminanceBits, common.StandardDCLuminanceValues),
		{Luminance, TableAC}:   common.NewHuffmanTable(common.StandardACLuminanceBits, common.StandardACLuminanceValues),
		{Chrominance, TableDC}: common.NewHuffmanTable(common.StandardDCChrominanceBits, common.StandardDCChrominanceValues),
		{Chrominance, TableAC}: common.NewHuffmanTable(common.StandardACChrominanceBits, common.StandardACChrominanceValues),
	})
	if err != nil {
		// Standard tables are complete by construction.
		panic(err)
	}
	return s
}

// Codes returns the derived symbol-indexed codes for a table.
func (s *CodeTableSet) Codes(ct ComponentType, tt TableType) []common.HuffmanCode {
	return s.codes[TableKey{Component: ct, Table: tt}]
}

// Table returns the canonical table, as needed for DHT segments.
func (s *CodeTableSet) Table(ct ComponentType, tt TableType) *common.HuffmanTable {
	return s.tables[TableKey{Component: ct, Table: tt}]
}
