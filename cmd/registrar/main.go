// Registrar is a student records system for a single institution. It tracks
// students, courses and enrollments, derives GPA and tuition, and persists
// its state to delimited text files between runs.
//
// Usage:
//
//	# Start the interactive menu with default configuration
//	registrar
//
//	# Start with a custom configuration file
//	registrar --config /path/to/config.yaml
//
//	# Start fresh with sample data in an alternate directory
//	registrar --data-dir /tmp/registrar-demo --seed
//
//	# Show version information
//	registrar version
package main

func main() {
	Execute()
}
