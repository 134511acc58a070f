// 14 Mar 2025

/*
Renumber shifts the residue numbers in a structure file by a constant
offset, so a modelled domain lines up with the numbering of the full
length sequence. The file format (mmcif or old PDB) is normally
guessed from the contents, with the file extension as a fallback.

In mmcif files the _atom_site, _pdbx_poly_seq_scheme,
_entity_poly_seq and _ma_qa_metric_local tables are rewritten. In PDB
files the ATOM, TER and ANISOU records are. HETATM records (ligands,
ions, waters) always keep their original numbering. Everything that
is not a residue number comes out byte for byte as it went in.

Usage:
	renumber [flags] -s startres structfile

The flags are:
	-s startres
		The residue number that residue 1 should become. Required.
	-c chain
		Only renumber records belonging to this chain. In PDB files a
		blank chain column matches any requested chain. This leniency
		comes from old single chain files and is kept on purpose.
	-o outfile
		Where to write. Default is the input name with "_renumbered"
		before the extension.
	-f format
		mmcif, pdb, or auto (the default).

Gzipped input is read transparently. Output is always plain text.
*/
package main
