package audiodriver

// DefaultDeviceName is the name reported for the single output device this
// driver can address. oto (the teacher's audio backend) has no API for
// enumerating or selecting output devices by name — it always opens the
// platform default — so device enumeration and selection are implemented
// only at the interface spec §6 describes, not with real multi-device
// binding. See SPEC_FULL.md's domain-stack table for the full rationale.
const DefaultDeviceName = "default"

// ListOutputDevices reports the output devices this driver can open. Since
// oto cannot enumerate hardware devices, this is always the single default
// device.
func ListOutputDevices() []string {
	return []string{DefaultDeviceName}
}
