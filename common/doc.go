/*
Package common contains helpers shared by the contracts of this repository:
witness checks, committee update access, versioning and storage utilities.
The package is compiled into contracts, so it may use neo-go interop packages
only.
*/
package common
