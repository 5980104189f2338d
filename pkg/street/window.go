package street

import "math"

// ComputeWindow returns the start of the recycling window at or ahead of
// cameraZ: the smallest multiple of blockLength*blockCount that is not
// below cameraZ. A camera behind the origin gets 0.
func ComputeWindow(cameraZ, blockLength float64, blockCount int) float64 {
	w := blockLength * float64(blockCount)
	if w <= 0 || cameraZ <= 0 {
		return 0
	}
	first := math.Ceil(cameraZ/w) * w
	if first < cameraZ {
		first += w
	}
	return first
}

// WindowIndex counts how many whole windows precede firstZ
func WindowIndex(firstZ, blockLength float64, blockCount int) int {
	w := blockLength * float64(blockCount)
	if w <= 0 {
		return 0
	}
	return int(math.Floor(firstZ/w + 0.5))
}

// FoldsBack reports whether block index would sit past the farthest visible
// block and must be drawn one window earlier.
func FoldsBack(firstZ float64, index int, cameraZ, blockLength float64, blockCount int) bool {
	return firstZ+float64(index)*blockLength > cameraZ+float64(blockCount)*blockLength
}

// BlockOffset is the world z at which block index is drawn this frame
func BlockOffset(firstZ float64, index int, cameraZ, blockLength float64, blockCount int) float64 {
	off := firstZ - 0.75*blockLength + float64(index)*blockLength
	if FoldsBack(firstZ, index, cameraZ, blockLength, blockCount) {
		off -= float64(blockCount) * blockLength
	}
	return off
}
