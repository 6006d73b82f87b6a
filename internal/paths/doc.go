// Resolves toolchain names to file paths.
//
// The unnamed toolchain lives at a fixed default file or its dotfolder
// variant. Named toolchains are searched at the name's .yaml file, a
// dotfolder variant, a per-name subfolder variant, or a target mapped by a
// dedicated alias file. The first existing candidate wins.
package paths
