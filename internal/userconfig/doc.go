// Loads layered runtime-parameter overrides from user configuration files.
//
// Global files in the home and XDG config directories are read first, then
// project-local dotfiles in the working directory. Publish and volume lists
// append across layers; env keys from later layers win. The merged result
// only extends the runtime parameters forwarded to the engine, never the
// hashed build specification.
package userconfig
