package syntax

// TokenSet is a set of token Kinds implemented as a small bitset, so that
// the grammar's "first sets" and "stop sets" can be tested and combined in
// O(1) instead of scanning slices on every cursor check.
//
// Based on rust-analyzer's TokenSet:
// https://github.com/rust-lang/rust-analyzer/blob/master/crates/parser/src/token_set.rs
// generalized from a fixed 128-bit pair to a word slice, since this
// language's Kind enumeration is larger than Typst's.
type TokenSet struct {
	words []uint64
}

const setWordBits = 64

// NewTokenSet creates a new empty set.
func NewTokenSet() TokenSet {
	return TokenSet{}
}

// TokenSetOf creates a set containing the given kinds.
func TokenSetOf(kinds ...Kind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s TokenSet) wordIndex(kind Kind) int { return int(kind) / setWordBits }

func (s *TokenSet) ensure(wordIdx int) {
	if wordIdx < len(s.words) {
		return
	}
	grown := make([]uint64, wordIdx+1)
	copy(grown, s.words)
	s.words = grown
}

// Add inserts a token kind into the set and returns the new set.
func (s TokenSet) Add(kind Kind) TokenSet {
	idx := s.wordIndex(kind)
	s.ensure(idx)
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	words[idx] |= 1 << (uint(kind) % setWordBits)
	return TokenSet{words: words}
}

// Remove removes a token kind from the set and returns the new set. Does
// nothing if the kind is not present.
func (s TokenSet) Remove(kind Kind) TokenSet {
	idx := s.wordIndex(kind)
	if idx >= len(s.words) {
		return s
	}
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	words[idx] &^= 1 << (uint(kind) % setWordBits)
	return TokenSet{words: words}
}

// Union combines two token sets.
func (s TokenSet) Union(other TokenSet) TokenSet {
	n := len(s.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	words := make([]uint64, n)
	for i := range words {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		words[i] = a | b
	}
	return TokenSet{words: words}
}

// Contains returns true if the set contains the given kind.
func (s TokenSet) Contains(kind Kind) bool {
	idx := s.wordIndex(kind)
	if idx >= len(s.words) {
		return false
	}
	return s.words[idx]&(1<<(uint(kind)%setWordBits)) != 0
}

// IsEmpty returns true if the set contains no kinds.
func (s TokenSet) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Predefined sets used by the classifier (C4), statement parser (C6), and
// declaration parser (C7) to decide grammar branches without re-listing the
// same token families inline at every call site.

// storageClassSet is the subset of attribute tokens that are storage
// classes (spec §4.4 isStorageClass).
var storageClassSet = TokenSetOf(
	KwStatic, KwExtern, KwAbstract, KwFinal, KwOverride, KwShared,
	KwConst, KwImmutable, KwInout, KwScope, KwGShared, KwLazy, KwRef, KwAuto,
	KwPure, KwNothrow,
)

// protectionSet is the set of protection-attribute tokens.
var protectionSet = TokenSetOf(KwPrivate, KwProtected, KwPublic, KwExport, KwPackage)

// linkageIntroducerSet starts a linkage attribute (`extern(C)`), handled
// together with storage classes since both begin with `extern`/`static`.
var linkageIntroducerSet = TokenSetOf(KwExtern)

// declStartSet is the whitelist of tokens that unambiguously start a
// declaration (spec §4.4 isDeclaration).
var declStartSet = TokenSetOf(
	KwAlias, KwClass, KwStruct, KwUnion, KwEnum, KwInterface, KwTemplate,
	KwImport, KwThis, Tilde, At, KwMixin, KwPragma, KwInvariant, KwUnittest,
	KwStatic, KwShared, KwConst, KwImmutable, KwInout, KwScope, KwExtern,
	KwFinal, KwAbstract, KwOverride, KwPrivate, KwProtected, KwPublic,
	KwExport, KwPackage, KwDeprecated, KwLazy, KwRef, KwAuto, KwPure,
	KwNothrow, KwGShared,
)

// stmtOnlyStartSet is the blacklist of tokens that unambiguously start a
// statement and never a declaration (spec §4.4 isDeclaration).
var stmtOnlyStartSet = TokenSetOf(
	KwAsm, KwBreak, KwCase, KwDefault, KwReturn, KwIf, KwElse, KwWhile,
	KwDo, KwFor, KwForeach, KwForeachReverse, KwSwitch, KwFinalSwitch,
	KwContinue, KwGoto, KwWith, KwSynchronized, KwTry, KwThrow, LBrace,
	KwAssert,
)

// unaryPrefixSet is the set of prefix unary operators (spec §4.5 level 14).
var unaryPrefixSet = TokenSetOf(Amp, Bang, Star, Plus, Minus, Tilde, PlusPlus, MinusMinus)

// relOpSet is the set of relational-comparison operator kinds recognized by
// CmpExpression (spec §4.5 level 9), including the deprecated
// floating-point orderings.
var relOpSet = TokenSetOf(
	Lt, Le, Gt, Ge, Unordered, UnorderedEq, LtGt, LtGtEq, NotGt, NotGtEq, NotLt, NotLtEq,
)

// assignOpSet is the set of assignment operator kinds (spec §4.5 level 2).
var assignOpSet = TokenSetOf(
	Assign, UShrAssign, ShrAssign, ShlAssign, PlusAssign, MinusAssign,
	MulAssign, ModAssign, AndAssign, DivAssign, OrAssign, PowAssign,
	XorAssign, CatAssign,
)

// builtinTypeSet covers `int`, `float`, `void`, ... — all lexed as a single
// Kind whose spelling lives in the token's text.
var builtinTypeSet = TokenSetOf(KwBuiltinType)

// recoveryAnchorSet mirrors Kind.IsRecoveryAnchor as a set, for call sites
// that need to combine it with other stop sets.
var recoveryAnchorSet = TokenSetOf(Semicolon, RParen, RBracket, RBrace)
