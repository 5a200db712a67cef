// Package natsutil holds JetStream helpers shared by the audit publisher:
// idempotent stream provisioning with jittered retry and connectivity error
// classification.
package natsutil
