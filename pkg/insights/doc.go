// Package insights holds the market data attached to generated roadmaps:
// salary ranges, growth, hiring companies, and in-demand skills per job title,
// plus trending skills per industry.
package insights
