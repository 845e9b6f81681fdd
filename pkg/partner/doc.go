// Package partner holds the partnership proposal form state: the field map,
// the ordered industry selection, and the submission lifecycle that turns
// both into a Payload and hands it to a Submitter.
//
// Controller is the single owner of that state. Front ends mutate it through
// SetField and ToggleIndustry, read it through Snapshot, and learn about the
// outcome of Submit through the Notifier they inject.
package partner
