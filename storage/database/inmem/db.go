package inmemdb

import (
	"sync"

	"github.com/trezcool/apar/core/assessment"
)

type (
	DB struct {
		assessment *assessmentTable
	}

	assessmentTable struct {
		mutex sync.RWMutex
		table map[string]*assessment.Assessment
	}
)

// Open returns an empty process-local store; nothing outlives the process.
func Open() *DB {
	return &DB{
		assessment: &assessmentTable{table: make(map[string]*assessment.Assessment)},
	}
}
