package recorder

// NoopRecorder is a no-op implementation used when no persistence is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordContract(_ string, _ *ContractRun) error   { return nil }
func (n *NoopRecorder) RecordLemon(_ string, _ *LemonRun) error         { return nil }
func (n *NoopRecorder) RecordInsurance(_ string, _ *InsuranceRun) error { return nil }
func (n *NoopRecorder) RecordPolicyMap(_ string, _ *PolicyMapRun) error { return nil }
func (n *NoopRecorder) RecordSignaling(_ string, _ *SignalingRun) error { return nil }
func (n *NoopRecorder) Close() error                                    { return nil }
