package synth

const systemPrompt = `You are a query generator. Given a piece of text, craft a user query that might have resulted in that text as an output.`
