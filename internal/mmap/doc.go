// Package mmap maps fingerprint database files read-only into memory.
//
//	m, err := mmap.Open("targets.prdb")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.AdviseSequential()
//	data := m.Bytes()
package mmap
