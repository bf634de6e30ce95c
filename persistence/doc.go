// Package persistence reads and writes prost's on-disk formats.
//
// All formats share one framing:
//
//	header   magic[4] version u16 compression u8 reserved u8 count u64 dim u32 blockSize u32
//	blocks   [uncompressed u32][compressed u32][data]...  (compressed == 0: raw)
//	end      [0 u32][0 u32]
//	trailer  CRC32C of everything before it
//
// The block payload depends on the magic:
//
//	"PRDB"  fingerprint database: count uvarint-prefixed identifiers, then count×dim int8 codes
//	"PRSC"  sequence cache: same layout, identifiers are the raw sequences
//	"PRGO"  term database: codec-encoded enrichment.TermDB
//
// Blocks are compressed with zstd (default) or lz4; a block that does not
// shrink below 90% of its size is stored raw.
package persistence
