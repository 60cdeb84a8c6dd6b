// Package serialization saves and loads named float64 tensors in the
// SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}, optional "__metadata__"]
//	  [Tensor data: raw little-endian bytes, row-major, tensors in name order]
//
// Tensors are written as F64. F64 and F32 files can be read; F32 data is
// widened to float64. The writer records a SHA-256 checksum of the data
// section under the "sha256" metadata key and the reader verifies it
// when present.
//
// Example usage:
//
//	err := serialization.WriteSafeTensors("out/result.safetensors",
//	    map[string]*tensor.Tensor{"r2": r2}, nil)
//
//	tensors, metadata, err := serialization.ReadSafeTensors("out/result.safetensors")
package serialization
