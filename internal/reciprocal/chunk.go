package reciprocal

import "fmt"

// Chunk is the half-open index range [Start, End) of the input assigned to
// one task. 0 <= Start <= End <= len(input).
type Chunk struct {
	Start int
	End   int
}

// Len returns the number of elements in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// Empty reports whether the chunk covers no element.
func (c Chunk) Empty() bool { return c.End <= c.Start }

// String implements fmt.Stringer.
func (c Chunk) String() string { return fmt.Sprintf("[%d, %d)", c.Start, c.End) }

// ChunkSize returns the default chunk length when nElements elements are
// split into nChunks chunks, i.e. ceil(nElements / nChunks).
// It panics if nChunks < 1 or nElements < 0.
func ChunkSize(nChunks, nElements int) int {
	checkChunking(nChunks, nElements)
	size := nElements / nChunks
	if nElements%nChunks != 0 {
		size++
	}
	return size
}

// ChunkStartInclusive returns the first index covered by chunk.
// Chunks past the end of the input start at nElements.
func ChunkStartInclusive(chunk, nChunks, nElements int) int {
	return min(chunk*ChunkSize(nChunks, nElements), nElements)
}

// ChunkEndExclusive returns the index one past the last element of chunk.
// The last chunk may be shorter than ChunkSize, or empty.
func ChunkEndExclusive(chunk, nChunks, nElements int) int {
	return min((chunk+1)*ChunkSize(nChunks, nElements), nElements)
}

// ChunkBounds returns the range of chunk as a Chunk.
// It panics if chunk is outside [0, nChunks).
func ChunkBounds(chunk, nChunks, nElements int) Chunk {
	if chunk < 0 || chunk >= nChunks {
		panic(fmt.Sprintf("reciprocal: chunk index %d out of range [0, %d)", chunk, nChunks))
	}
	size := ChunkSize(nChunks, nElements)
	return Chunk{
		Start: min(chunk*size, nElements),
		End:   min((chunk+1)*size, nElements),
	}
}

// Partition returns the nChunks ranges covering [0, nElements) in order.
// When nChunks > nElements the trailing chunks are empty.
func Partition(nChunks, nElements int) []Chunk {
	size := ChunkSize(nChunks, nElements)
	chunks := make([]Chunk, nChunks)
	for i := range chunks {
		chunks[i] = Chunk{
			Start: min(i*size, nElements),
			End:   min((i+1)*size, nElements),
		}
	}
	return chunks
}

func checkChunking(nChunks, nElements int) {
	if nChunks < 1 {
		panic(fmt.Sprintf("reciprocal: invalid chunk count %d", nChunks))
	}
	if nElements < 0 {
		panic(fmt.Sprintf("reciprocal: invalid element count %d", nElements))
	}
}
