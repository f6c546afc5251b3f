package entity

import "time"

type CacheEntry struct {
	TextHash     string
	Text         string
	Embedding    []float32
	HitCount     int
	LastAccessed time.Time
}
