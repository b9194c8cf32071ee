package domain

import (
	"crypto/md5"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationID(t *testing.T) {
	id := EvaluationID("resume1", "J1")

	// Hex digest of "resumeID_jobID" is the storage wire contract.
	want := fmt.Sprintf("%x", md5.Sum([]byte("resume1_J1")))
	assert.Equal(t, want, id)
	assert.Equal(t, id, EvaluationID("resume1", "J1"))
	assert.NotEqual(t, id, EvaluationID("resume2", "J1"))
	assert.NotEqual(t, id, EvaluationID("resume1", "J2"))
}

func TestNewResumeIDIsStablePerFile(t *testing.T) {
	assert.Equal(t, NewResumeID("jane.pdf"), NewResumeID("jane.pdf"))
	assert.NotEqual(t, NewResumeID("jane.pdf"), NewResumeID("john.pdf"))
	assert.Len(t, NewResumeID("jane.pdf"), 8)
}

func TestNewJobIDVariesWithTime(t *testing.T) {
	now := time.Now()
	first := NewJobID("Data Engineer", "Acme", now)
	assert.Len(t, first, 8)
	assert.Equal(t, first, NewJobID("Data Engineer", "Acme", now))
	assert.NotEqual(t, first, NewJobID("Data Engineer", "Acme", now.Add(time.Nanosecond)))
}

func TestNewBatchRun(t *testing.T) {
	run := NewBatchRun("J1", 5)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "J1", run.JobID)
	assert.Equal(t, 5, run.TotalResumes)
	assert.Zero(t, run.ProcessedCount)
	assert.Equal(t, BatchStatusPending, run.Status)
	assert.NotEqual(t, run.ID, NewBatchRun("J1", 5).ID)
}
