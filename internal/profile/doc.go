// Package profile persists local per-section profiles: the last field set
// successfully applied to the appliance for each persistable section, plus
// the operator's autofill preference. Profiles live in a YAML registry under
// the OS config directory and are written atomically.
//
// Profiles exist to make re-provisioning painless. In "hints" mode the
// console offers previously used values as suggestions; in "fill" mode it
// pre-populates empty forms with them.
package profile
