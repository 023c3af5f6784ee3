// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Binary Decision Diagrams (BDD), a data
structure used to efficiently represent Boolean functions over a fixed set of
variables or, equivalently, sets of Boolean vectors with a fixed size.

# Basics

Each BDD has a fixed number of variables, Varnum, declared when it is
initialized (using the function New) and each variable is represented by an
(integer) index in the interval [0..Varnum), called a level. The two constants
have level Varnum.

Most operations over BDD return a Node; that is a pointer to a "vertex" in the
BDD that includes a variable level, and the address of the low and high branch
for this node. We use integer to represent the address of Nodes, with the
convention that 1 (respectively 0) is the address of the constant function True
(respectively False). Two nodes of the same BDD denote the same function if and
only if they have the same address (see Equal).

The data structures and algorithms are an adaptation of those found in the
C-library BuDDy, with a unicity table based on the Go runtime hashmap.

# Use of build tags

To get access to better statistics about caches and garbage collection, as well
as to unlock logging of some operations, you can compile your executable with
the build tag `debug`.

# Automatic memory management

The library is written in pure Go. Like with MuDDy, a ML interface to BuDDy, we
piggyback on the garbage collection mechanism offered by the host language. We
take care of BDD resizing and memory management directly in the library, but
"external" references to BDD nodes made by user code are automatically managed
by the Go runtime, through finalizers.

# Concurrency

All the exported methods of a BDD are safe for concurrent use. They are
serialized by a single mutex, also taken by the finalizers that release
external references.
*/
package bdd
