// Package resources contains functions to prepare paths for TestFalcon
// resources and to read and write the files found there.
//
// The JoinPath() function returns the correct path to the resource
// directory/file specified in the arguments. It handles the creation of
// directories as required but does not otherwise touch or create files.
//
// JoinPath() handles the inclusion of the correct base path. The base path
// depends on how the binary was built.
//
// For builds with the "release" build tag, the path returned by JoinPath() is
// rooted in the user's configuration directory. On modern Linux systems the
// full path would be something like:
//
//	/home/user/.config/testfalcon/
//
// For non-"release" builds, the correct path is rooted in the current working
// directory:
//
//	.testfalcon
//
// All file access goes through the package level Fs value. Tests replace it
// with an in-memory filesystem.
//
// # portable.txt
//
// An exception to the above rules is when an empty file named 'portable.txt' is
// in the same directory as the TestFalcon program binary. When the file exists
// the resources are saved in a directory named 'TestFalcon_UserData' in the
// same directory as the program binary.
package resources
