package command

import "strings"

// PipelineStage is a set of pipeline stages. A semaphore wait blocks the
// stages in its mask until the semaphore is signaled; earlier stages of
// the same submission may still run.
type PipelineStage uint32

// Pipeline stages in execution order.
const (
	StageTopOfPipe PipelineStage = 1 << iota
	StageDrawIndirect
	StageVertexInput
	StageVertexShader
	StageFragmentShader
	StageEarlyFragmentTests
	StageLateFragmentTests
	StageColorAttachmentOutput
	StageComputeShader
	StageTransfer
	StageBottomOfPipe
	StageHost
)

var stageNames = [...]string{
	"TopOfPipe",
	"DrawIndirect",
	"VertexInput",
	"VertexShader",
	"FragmentShader",
	"EarlyFragmentTests",
	"LateFragmentTests",
	"ColorAttachmentOutput",
	"ComputeShader",
	"Transfer",
	"BottomOfPipe",
	"Host",
}

// String returns a "|"-separated list of stage names.
func (s PipelineStage) String() string {
	if s == 0 {
		return "None"
	}
	var parts []string
	for i, name := range stageNames {
		if s&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if rest := s &^ (1<<len(stageNames) - 1); rest != 0 {
		parts = append(parts, "Unknown")
	}
	return strings.Join(parts, "|")
}
