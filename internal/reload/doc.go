// Package reload implements the OS reload workflow for SoftLayer instances.
//
// A run moves through a fixed sequence of states:
//
//	Resolving -> PrecheckOk -> Dispatching -> Polling -> Done
//	         \-> PrecheckFailed
//	                      \-> Cancelled
//
// Resolving lists the account and selects targets either by shell glob
// (ModePattern) or by exact name (ModeExact). The precheck refuses to
// touch anything while a target still has a transaction in flight. After
// the operator confirms, one reload is issued per target with every SSH
// key on the account, and the orchestrator polls until all targets are
// idle again.
//
// Per-host reload rejections are reported on the output writer and in
// Result.Outcomes; they do not fail the run.
package reload
