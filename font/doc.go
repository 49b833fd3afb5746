// Package font derives style traits from PDF font names.
//
// PDF decoders report the BaseFont of the font dictionary, which often
// carries a subset tag and weight or slant suffixes:
//
//	ABCDEF+Helvetica-BoldOblique
//
// [Parse] strips the subset tag and reports the traits:
//
//	name := font.Parse("ABCDEF+Helvetica-BoldOblique")
//	// name.Base == "Helvetica-BoldOblique", name.Bold, name.Italic == true
package font
